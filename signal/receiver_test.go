package signal

import (
	"testing"

	"github.com/hollowroot/relay/common"
)

// wire builds an arena with senders at the given positions and a receiver
// wired to them under the policy. Sender active states are set directly.
func wire(t *testing.T, policy Policy, states map[common.GridPos]bool, required []common.GridPos) (*Arena, *Receiver) {
	t.Helper()
	arena := NewArena()
	r := NewReceiver(common.GridPos{Col: 9, Row: 9}, "door")
	r.policy = policy
	r.required = required
	for _, pos := range sortedKeys(states) {
		s := NewSender(pos, KindLever, MethodOnce, 0, nil)
		s.active = states[pos]
		if err := arena.Add(s); err != nil {
			t.Fatalf("add sender: %v", err)
		}
		r.inputs = append(r.inputs, pos)
	}
	return arena, r
}

func sortedKeys(m map[common.GridPos]bool) []common.GridPos {
	out := make([]common.GridPos, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
				out[j-1], out[j] = b, a
			}
		}
	}
	return out
}

func TestReceiverPolicies(t *testing.T) {
	a := common.GridPos{Col: 1, Row: 0}
	b := common.GridPos{Col: 2, Row: 0}

	cases := []struct {
		name     string
		policy   Policy
		states   map[common.GridPos]bool
		required []common.GridPos
		want     bool
	}{
		{"no_input_always_inactive", PolicyNoInput, map[common.GridPos]bool{a: true}, nil, false},
		{"any_one_active", PolicyAnyInput, map[common.GridPos]bool{a: true, b: false}, nil, true},
		{"any_none_active", PolicyAnyInput, map[common.GridPos]bool{a: false, b: false}, nil, false},
		{"all_both_active", PolicyAllInputs, map[common.GridPos]bool{a: true, b: true}, []common.GridPos{a, b}, true},
		{"all_partial_inactive", PolicyAllInputs, map[common.GridPos]bool{a: true, b: false}, []common.GridPos{a, b}, false},
		{"all_empty_required", PolicyAllInputs, map[common.GridPos]bool{a: true}, nil, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			arena, r := wire(t, c.policy, c.states, c.required)
			if got := r.Recompute(arena); got != c.want {
				t.Fatalf("recompute = %v, want %v", got, c.want)
			}
			if r.Active() != c.want {
				t.Fatalf("active = %v, want %v", r.Active(), c.want)
			}
		})
	}
}

func TestReceiverAllInputsUnwiredRequirement(t *testing.T) {
	a := common.GridPos{Col: 1, Row: 0}
	missing := common.GridPos{Col: 7, Row: 7}

	arena, r := wire(t, PolicyAllInputs, map[common.GridPos]bool{a: true}, []common.GridPos{a, missing})
	if r.Recompute(arena) {
		t.Fatalf("required position with no wired sender must keep the receiver inactive")
	}
}

func TestReceiverRecomputeIdempotent(t *testing.T) {
	a := common.GridPos{Col: 1, Row: 0}
	arena, r := wire(t, PolicyAnyInput, map[common.GridPos]bool{a: true}, nil)

	first := r.Recompute(arena)
	second := r.Recompute(arena)
	if first != second {
		t.Fatalf("recompute not idempotent: %v then %v", first, second)
	}
}
