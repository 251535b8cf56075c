package levels

import (
	"fmt"

	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/prefabs"
	"github.com/hollowroot/relay/signal"
)

// Graph is a level's fully linked signal network plus the linking
// diagnostics it produced.
type Graph struct {
	Arena       *signal.Arena
	Receivers   []*signal.Receiver
	Diagnostics []signal.Diagnostic
}

// BuildGraph walks the level's object records in file order, constructs
// senders and receivers from the prefab kind definitions, and links the
// requisites from the property bag. scriptErr receives runtime script
// failures (may be nil); construction errors are load-fatal.
func BuildGraph(lvl *Level, defs *prefabs.SenderDefsSpec, cfg Configuration, scriptErr func(error)) (*Graph, error) {
	if lvl == nil {
		return nil, fmt.Errorf("levels: nil level")
	}
	if defs == nil {
		return nil, fmt.Errorf("levels: nil sender defs")
	}

	recvKinds := map[string]bool{}
	for _, k := range defs.Receivers {
		recvKinds[k] = true
	}

	arena := signal.NewArena()
	var receivers []*signal.Receiver

	for _, obj := range lvl.Objects {
		pos := common.GridPos{Col: obj.X, Row: obj.Y}

		if recvKinds[obj.Kind] {
			// Duplicate receiver positions stay in the graph; the linker
			// degrades them to first-match with a diagnostic.
			receivers = append(receivers, signal.NewReceiver(pos, obj.Kind))
			continue
		}

		def, ok := defs.Senders[obj.Kind]
		if !ok {
			// crates etc. belong to the physics world, not the graph
			continue
		}

		s, err := buildSender(pos, obj.Kind, def, scriptErr)
		if err != nil {
			return nil, err
		}
		if err := arena.Add(s); err != nil {
			return nil, fmt.Errorf("levels: %w", err)
		}
	}

	diags := signal.Link(arena, receivers, cfg.Requisites)
	return &Graph{
		Arena:       arena,
		Receivers:   receivers,
		Diagnostics: diags,
	}, nil
}

func buildSender(pos common.GridPos, kind string, def prefabs.SenderDefSpec, scriptErr func(error)) (*signal.Sender, error) {
	var methods signal.Method
	for _, m := range def.Methods {
		bit, err := signal.ParseMethod(m)
		if err != nil {
			return nil, fmt.Errorf("levels: sender %s at %s: %w", kind, pos, err)
		}
		methods |= bit
	}
	if methods == 0 {
		return nil, fmt.Errorf("levels: sender %s at %s has no activation methods", kind, pos)
	}

	pred, err := buildPredicate(kind, def, scriptErr)
	if err != nil {
		return nil, err
	}
	return signal.NewSender(pos, signal.Kind(kind), methods, def.CooldownTicks, pred), nil
}

func buildPredicate(kind string, def prefabs.SenderDefSpec, scriptErr func(error)) (signal.Predicate, error) {
	if def.Script != "" {
		src, err := prefabs.LoadScript(def.Script)
		if err != nil {
			return nil, fmt.Errorf("levels: sender %s: load script: %w", kind, err)
		}
		pred, err := signal.NewScriptPredicate(def.Script, src, scriptErr)
		if err != nil {
			return nil, fmt.Errorf("levels: sender %s: %w", kind, err)
		}
		return pred, nil
	}
	if def.UseRange > 0 {
		return signal.UsePredicate(def.UseRange), nil
	}
	if def.Radius > 0 {
		if def.MinMass > 0 {
			return signal.PressurePredicate(def.Radius, def.MinMass), nil
		}
		return signal.ProximityPredicate(def.Radius), nil
	}
	return nil, fmt.Errorf("levels: sender %s defines no predicate", kind)
}
