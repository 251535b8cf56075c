package signal

import (
	"testing"

	"github.com/hollowroot/relay/common"
)

// stimAt builds a stimulus with the player standing on the given tile.
func stimAt(pos common.GridPos, use bool) Stimulus {
	x, y := pos.WorldCenter()
	return Stimulus{PlayerPresent: true, PlayerX: x, PlayerY: y, UsePressed: use}
}

// boolPredicate drives a sender from a scripted truth sequence.
func boolPredicate(truth *bool) Predicate {
	return func(Stimulus, common.GridPos) bool { return *truth }
}

func runSequence(t *testing.T, s *Sender, truths []bool) []bool {
	t.Helper()
	out := make([]bool, 0, len(truths))
	sat := false
	pred := boolPredicate(&sat)
	s.pred = pred
	for i, v := range truths {
		sat = v
		s.Evaluate(uint64(i+1), Stimulus{})
		out = append(out, s.Active())
	}
	return out
}

func TestSenderOncePermanently(t *testing.T) {
	cases := []struct {
		name   string
		truths []bool
		want   []bool
	}{
		{"latches_on_first_stimulus", []bool{false, true, false, false}, []bool{false, true, true, true}},
		{"never_stimulated", []bool{false, false, false}, []bool{false, false, false}},
		{"already_active_ignores_stimulus", []bool{true, true, false, true}, []bool{true, true, true, true}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSender(common.GridPos{Col: 2, Row: 3}, KindLever, MethodOnce, 0, nil)
			got := runSequence(t, s, c.truths)
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("tick %d: active = %v, want %v", i+1, got[i], c.want[i])
				}
			}
		})
	}
}

func TestSenderOnceTransitionFiresOnlyOnRisingEdge(t *testing.T) {
	s := NewSender(common.GridPos{}, KindLever, MethodOnce, 0, nil)
	sat := false
	s.pred = boolPredicate(&sat)

	transitions := 0
	sat = true
	for i := 1; i <= 5; i++ {
		if tr := s.Evaluate(uint64(i), Stimulus{}); tr == TransitionActivated {
			transitions++
		}
	}
	if transitions != 1 {
		t.Fatalf("activated transitions = %d, want 1", transitions)
	}
}

func TestSenderByIntervention(t *testing.T) {
	s := NewSender(common.GridPos{}, KindPressurePlate, MethodIntervention, 0, nil)
	truths := []bool{true, true, false, true, false, false}

	sat := false
	s.pred = boolPredicate(&sat)

	var activated, deactivated int
	for i, v := range truths {
		sat = v
		switch s.Evaluate(uint64(i+1), Stimulus{}) {
		case TransitionActivated:
			activated++
		case TransitionDeactivated:
			deactivated++
		}
		if s.Active() != v {
			t.Fatalf("tick %d: active = %v, want live predicate %v", i+1, s.Active(), v)
		}
	}
	if activated != 2 || deactivated != 2 {
		t.Fatalf("edges = (%d up, %d down), want (2, 2)", activated, deactivated)
	}
}

func TestSenderOnToggleParity(t *testing.T) {
	cases := []struct {
		name   string
		events int
		want   bool
	}{
		{"one_event", 1, true},
		{"two_events", 2, false},
		{"three_events", 3, true},
		{"zero_events", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSender(common.GridPos{}, KindComputerT1, MethodToggle, 0, nil)
			sat := false
			s.pred = boolPredicate(&sat)

			tick := uint64(0)
			for i := 0; i < c.events; i++ {
				// each event is a rising edge followed by release
				sat = true
				tick++
				s.Evaluate(tick, Stimulus{})
				sat = false
				tick++
				s.Evaluate(tick, Stimulus{})
			}
			if s.Active() != c.want {
				t.Fatalf("after %d events active = %v, want %v", c.events, s.Active(), c.want)
			}
		})
	}
}

func TestSenderToggleIgnoresHeldStimulus(t *testing.T) {
	s := NewSender(common.GridPos{}, KindComputerT1, MethodToggle, 0, nil)
	sat := true
	s.pred = boolPredicate(&sat)

	for i := 1; i <= 4; i++ {
		s.Evaluate(uint64(i), Stimulus{})
	}
	// held stimulus is one event, not four
	if !s.Active() {
		t.Fatalf("held stimulus should count as a single toggle event")
	}
}

func TestSenderOnTimer(t *testing.T) {
	t.Run("deactivates_after_cooldown", func(t *testing.T) {
		s := NewSender(common.GridPos{}, KindTrigger, MethodToggle|MethodTimer, 3, nil)
		sat := false
		s.pred = boolPredicate(&sat)

		sat = true
		s.Evaluate(1, Stimulus{}) // toggle on, timer armed for tick 4
		sat = false
		for tick := uint64(2); tick <= 3; tick++ {
			s.Evaluate(tick, Stimulus{})
			if !s.Active() {
				t.Fatalf("tick %d: timer should hold sender active", tick)
			}
		}
		if tr := s.Evaluate(4, Stimulus{}); tr != TransitionDeactivated {
			t.Fatalf("tick 4: transition = %v, want deactivated", tr)
		}
		if s.Active() {
			t.Fatalf("sender should be inactive after timer fired")
		}
	})

	t.Run("timer_overrides_live_stimulus", func(t *testing.T) {
		s := NewSender(common.GridPos{}, KindTrigger, MethodIntervention|MethodTimer, 2, nil)
		sat := false
		s.pred = boolPredicate(&sat)

		sat = true
		s.Evaluate(1, Stimulus{})
		s.Evaluate(2, Stimulus{})
		s.Evaluate(3, Stimulus{}) // timer fires despite held stimulus
		if s.Active() {
			t.Fatalf("timer expiry should override live stimulus")
		}
	})

	t.Run("reactivation_rearms", func(t *testing.T) {
		s := NewSender(common.GridPos{}, KindTrigger, MethodIntervention|MethodTimer, 2, nil)
		sat := false
		s.pred = boolPredicate(&sat)

		sat = true
		s.Evaluate(1, Stimulus{})
		sat = false
		s.Evaluate(2, Stimulus{})
		s.Evaluate(3, Stimulus{})
		if s.Active() {
			t.Fatalf("expected inactive after first expiry")
		}
		sat = true
		if tr := s.Evaluate(4, Stimulus{}); tr != TransitionActivated {
			t.Fatalf("re-trigger after expiry should activate, got %v", tr)
		}
	})
}

func TestSenderNilPredicateIsFalse(t *testing.T) {
	s := NewSender(common.GridPos{}, KindScanner, MethodIntervention, 0, nil)
	if tr := s.Evaluate(1, stimAt(common.GridPos{}, true)); tr != TransitionNone {
		t.Fatalf("nil predicate should never activate, got %v", tr)
	}
}

func TestUsePredicateRange(t *testing.T) {
	pred := UsePredicate(48)
	pos := common.GridPos{Col: 4, Row: 4}
	cx, cy := pos.WorldCenter()

	cases := []struct {
		name string
		stim Stimulus
		want bool
	}{
		{"in_range_use", Stimulus{PlayerPresent: true, PlayerX: cx + 20, PlayerY: cy, UsePressed: true}, true},
		{"in_range_no_use", Stimulus{PlayerPresent: true, PlayerX: cx + 20, PlayerY: cy}, false},
		{"out_of_range", Stimulus{PlayerPresent: true, PlayerX: cx + 100, PlayerY: cy, UsePressed: true}, false},
		{"no_player", Stimulus{UsePressed: true}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pred(c.stim, pos); got != c.want {
				t.Fatalf("predicate = %v, want %v", got, c.want)
			}
		})
	}
}

func TestPressurePredicateMassThreshold(t *testing.T) {
	pred := PressurePredicate(64, 10)
	pos := common.GridPos{Col: 1, Row: 1}
	cx, cy := pos.WorldCenter()

	cases := []struct {
		name string
		stim Stimulus
		want bool
	}{
		{"heavy_body_in_range", Stimulus{Bodies: []Body{{X: cx + 50, Y: cy, Mass: 12}}}, true},
		{"heavy_body_out_of_range", Stimulus{Bodies: []Body{{X: cx + 70, Y: cy, Mass: 12}}}, false},
		{"light_body_in_range", Stimulus{Bodies: []Body{{X: cx + 10, Y: cy, Mass: 5}}}, false},
		{"player_in_range", Stimulus{PlayerPresent: true, PlayerX: cx, PlayerY: cy + 30}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pred(c.stim, pos); got != c.want {
				t.Fatalf("predicate = %v, want %v", got, c.want)
			}
		})
	}
}
