package levels

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/signal"
)

const requisiteKeyPrefix = "requisite_"

// Configuration is the level's decoded property bag.
type Configuration struct {
	CostumeSet      int
	NextLevelName   string
	StartingCostume string
	ExitLocation    common.GridPos
	HasExit         bool
	Requisites      []signal.Requisite
}

// DecodeConfiguration reads the property bag. Absent keys fall back to
// defaults (costume set 0, next level "MainMenu"); malformed requisite
// tokens are dropped with a warning rather than failing the level.
//
// The requisite wire format is fixed: keys are "requisite_<col>_<row>"
// naming the receiver position, values are comma/whitespace separated
// "<col>_<row>" sender positions plus an activation keyword "any", "all" or
// "none" (the default).
func DecodeConfiguration(props map[string]string) (Configuration, []string) {
	cfg := Configuration{
		NextLevelName:   "MainMenu",
		StartingCostume: "default",
	}
	var warnings []string

	if v, ok := props["costume_set"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("costume_set %q is not a number", v))
		} else {
			cfg.CostumeSet = n
		}
	}
	if v, ok := props["next_level"]; ok && strings.TrimSpace(v) != "" {
		cfg.NextLevelName = strings.TrimSpace(v)
	}
	if v, ok := props["starting_costume"]; ok && strings.TrimSpace(v) != "" {
		cfg.StartingCostume = strings.TrimSpace(v)
	}
	if v, ok := props["exit"]; ok {
		pos, err := common.ParseGridPos(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("exit %q: %v", v, err))
		} else {
			cfg.ExitLocation = pos
			cfg.HasExit = true
		}
	}

	// Property bags are maps; sort the requisite keys so repeated loads of
	// the same level always yield identical wiring.
	var keys []string
	for k := range props {
		if strings.HasPrefix(k, requisiteKeyPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		rq, warns := parseRequisite(k, props[k])
		warnings = append(warnings, warns...)
		if rq != nil {
			cfg.Requisites = append(cfg.Requisites, *rq)
		}
	}
	return cfg, warnings
}

func parseRequisite(key, value string) (*signal.Requisite, []string) {
	var warnings []string

	out, err := common.ParseGridPos(strings.TrimPrefix(key, requisiteKeyPrefix))
	if err != nil {
		return nil, []string{fmt.Sprintf("requisite key %q: %v", key, err)}
	}

	rq := signal.Requisite{Output: out, Policy: signal.PolicyNoInput}
	for _, tok := range splitTokens(value) {
		if p, err := signal.ParsePolicy(tok); err == nil {
			rq.Policy = p
			continue
		}
		pos, err := common.ParseGridPos(tok)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("requisite %s: bad token %q", key, tok))
			continue
		}
		rq.Required = append(rq.Required, pos)
	}
	return &rq, warnings
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
