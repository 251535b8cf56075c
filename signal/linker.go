package signal

import (
	"fmt"

	"github.com/hollowroot/relay/common"
)

// Requisite is a level-authored wiring rule: which senders must be active
// for the receiver at Output, and under which policy.
type Requisite struct {
	Output   common.GridPos
	Required []common.GridPos
	Policy   Policy
}

// DiagCode classifies a non-fatal linking problem.
type DiagCode string

const (
	DiagUnknownReceiver   DiagCode = "unknown_receiver"
	DiagDuplicateReceiver DiagCode = "duplicate_receiver"
	DiagDanglingSender    DiagCode = "dangling_sender"
)

// Diagnostic is a load-degraded warning surfaced by the linker. The core
// reports these as values; callers decide how to log them.
type Diagnostic struct {
	Code DiagCode
	Pos  common.GridPos
}

func (d Diagnostic) String() string {
	switch d.Code {
	case DiagUnknownReceiver:
		return fmt.Sprintf("requisite targets no receiver at %s", d.Pos)
	case DiagDuplicateReceiver:
		return fmt.Sprintf("multiple receivers at %s, wiring first match", d.Pos)
	case DiagDanglingSender:
		return fmt.Sprintf("requisite references no sender at %s", d.Pos)
	}
	return fmt.Sprintf("%s at %s", d.Code, d.Pos)
}

// Link wires requisites into the receiver set, one shot at level load.
// Dangling references and duplicate mappings degrade with a diagnostic
// instead of failing; after all requisites are applied every receiver is
// recomputed once so the graph has a defined state before the first tick.
func Link(arena *Arena, receivers []*Receiver, reqs []Requisite) []Diagnostic {
	var diags []Diagnostic

	for _, rq := range reqs {
		target, dup := findReceiver(receivers, rq.Output)
		if target == nil {
			diags = append(diags, Diagnostic{Code: DiagUnknownReceiver, Pos: rq.Output})
			continue
		}
		if dup {
			diags = append(diags, Diagnostic{Code: DiagDuplicateReceiver, Pos: rq.Output})
		}

		// Wire inputs in discovery order across the full sender set, not the
		// order listed in the requisite.
		for _, s := range arena.Senders() {
			if !containsPos(rq.Required, s.Pos()) {
				continue
			}
			if !target.wired(s.Pos()) {
				target.inputs = append(target.inputs, s.Pos())
			}
		}
		for _, p := range rq.Required {
			if _, ok := arena.At(p); !ok {
				diags = append(diags, Diagnostic{Code: DiagDanglingSender, Pos: p})
			}
		}

		// A later requisite for the same receiver replaces its policy and
		// required set; wired inputs accumulate.
		target.policy = rq.Policy
		target.required = append([]common.GridPos(nil), rq.Required...)
	}

	for _, r := range receivers {
		r.Recompute(arena)
	}
	return diags
}

// findReceiver returns the first receiver at pos and whether more than one
// exists there. First match keeps a misconfigured level resumable.
func findReceiver(receivers []*Receiver, pos common.GridPos) (*Receiver, bool) {
	var first *Receiver
	dup := false
	for _, r := range receivers {
		if r.pos != pos {
			continue
		}
		if first == nil {
			first = r
		} else {
			dup = true
		}
	}
	return first, dup
}

func containsPos(ps []common.GridPos, p common.GridPos) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
