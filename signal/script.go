package signal

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/hollowroot/relay/common"
)

// Scripted predicates let level authors define computer/scanner activation
// logic in tengo without touching the evaluator. The script runs once per
// tick with the stimulus bound to globals and must assign the boolean
// __active:
//
//	dx := __player_x - __x
//	dy := __player_y - __y
//	__active = __use && dx*dx+dy*dy <= 48*48
//
// A script error degrades to "predicate false" for that tick and is passed
// to report, never surfaced as a tick failure.
func NewScriptPredicate(name string, src []byte, report func(error)) (Predicate, error) {
	script := tengo.NewScript(append([]byte(nil), src...))
	script.SetImports(stdlib.GetModuleMap("math"))

	vars := map[string]any{
		"__active":         false,
		"__col":            0,
		"__row":            0,
		"__x":              0.0,
		"__y":              0.0,
		"__player_present": false,
		"__player_x":       0.0,
		"__player_y":       0.0,
		"__use":            false,
		"__costume":        "",
		"__bodies":         []any{},
	}
	for k, v := range vars {
		if err := script.Add(k, v); err != nil {
			return nil, fmt.Errorf("script %s: add %s: %w", name, k, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: compile: %w", name, err)
	}

	fail := func(err error) bool {
		if report != nil {
			report(fmt.Errorf("script %s: %w", name, err))
		}
		return false
	}

	return func(stim Stimulus, pos common.GridPos) bool {
		cx, cy := pos.WorldCenter()
		bodies := make([]any, 0, len(stim.Bodies))
		for _, b := range stim.Bodies {
			bodies = append(bodies, map[string]any{
				"x":    b.X,
				"y":    b.Y,
				"mass": b.Mass,
			})
		}

		sets := []struct {
			name  string
			value any
		}{
			{"__active", false},
			{"__col", pos.Col},
			{"__row", pos.Row},
			{"__x", cx},
			{"__y", cy},
			{"__player_present", stim.PlayerPresent},
			{"__player_x", stim.PlayerX},
			{"__player_y", stim.PlayerY},
			{"__use", stim.UsePressed},
			{"__costume", stim.Costume},
			{"__bodies", bodies},
		}
		for _, s := range sets {
			if err := compiled.Set(s.name, s.value); err != nil {
				return fail(err)
			}
		}
		if err := compiled.Run(); err != nil {
			return fail(err)
		}
		return compiled.Get("__active").Bool()
	}, nil
}
