package signal

import (
	"fmt"
	"strings"

	"github.com/hollowroot/relay/common"
)

// Policy decides how a receiver combines its wired inputs.
type Policy int

const (
	// PolicyNoInput marks a receiver with no wiring: always inactive. It is
	// a modeling signal (unreachable door), not a bug.
	PolicyNoInput Policy = iota
	// PolicyAnyInput activates the receiver when at least one wired sender
	// is active.
	PolicyAnyInput
	// PolicyAllInputs activates the receiver when every sender at its
	// required positions is active.
	PolicyAllInputs
)

// ParsePolicy maps the level-data keywords to a policy. The keywords
// ("none", "any", "all") are part of the level wire format and must not
// change.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return PolicyNoInput, nil
	case "any":
		return PolicyAnyInput, nil
	case "all":
		return PolicyAllInputs, nil
	}
	return PolicyNoInput, fmt.Errorf("unknown activation policy %q", s)
}

func (p Policy) String() string {
	switch p {
	case PolicyAnyInput:
		return "any"
	case PolicyAllInputs:
		return "all"
	default:
		return "none"
	}
}

// Receiver is a signal-consuming node (door, gate). It holds wired sender
// positions, never the senders themselves; they are resolved through the
// arena at recompute time.
type Receiver struct {
	pos    common.GridPos
	kind   string
	policy Policy

	// inputs are the wired sender positions in discovery order across the
	// full sender set. The order is for display/debug only; policy
	// evaluation is set-based.
	inputs []common.GridPos
	// required is the declared position set for PolicyAllInputs. A required
	// position with no wired sender is unsatisfiable and keeps the receiver
	// inactive.
	required []common.GridPos

	active bool
}

func NewReceiver(pos common.GridPos, kind string) *Receiver {
	return &Receiver{pos: pos, kind: kind}
}

func (r *Receiver) Pos() common.GridPos { return r.pos }
func (r *Receiver) Kind() string        { return r.kind }
func (r *Receiver) Policy() Policy      { return r.policy }
func (r *Receiver) Active() bool        { return r.active }

// Inputs returns the wired sender positions in discovery order.
func (r *Receiver) Inputs() []common.GridPos { return r.inputs }

func (r *Receiver) wired(pos common.GridPos) bool {
	for _, p := range r.inputs {
		if p == pos {
			return true
		}
	}
	return false
}

// Recompute derives active from the wired senders' current states. It is
// pure and idempotent: repeated calls with unchanged inputs yield the same
// result and no side effects. Edge-triggered effects belong to the caller.
func (r *Receiver) Recompute(arena *Arena) bool {
	r.active = r.compute(arena)
	return r.active
}

func (r *Receiver) compute(arena *Arena) bool {
	switch r.policy {
	case PolicyAnyInput:
		for _, p := range r.inputs {
			if s, ok := arena.At(p); ok && s.Active() {
				return true
			}
		}
		return false
	case PolicyAllInputs:
		if len(r.required) == 0 {
			return false
		}
		for _, p := range r.required {
			if !r.wired(p) {
				return false
			}
			s, ok := arena.At(p)
			if !ok || !s.Active() {
				return false
			}
		}
		return true
	default:
		return false
	}
}
