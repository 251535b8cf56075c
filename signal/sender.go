package signal

import (
	"fmt"
	"strings"

	"github.com/hollowroot/relay/common"
)

// Kind identifies a sender's flavor. The core only uses it to pick the
// stimulus predicate at construction; rendering reads it for texture choice.
type Kind string

const (
	KindLever         Kind = "lever"
	KindComputerT1    Kind = "computer_t1"
	KindComputerT2    Kind = "computer_t2"
	KindTrigger       Kind = "trigger"
	KindPressurePlate Kind = "pressure_plate"
	KindScanner       Kind = "scanner"
)

// Method is a bitset of activation methods. Methods are non-exclusive; a
// sender may combine e.g. intervention with a timer.
type Method uint8

const (
	MethodOnce Method = 1 << iota
	MethodIntervention
	MethodTimer
	MethodToggle
)

func (m Method) Has(f Method) bool { return m&f != 0 }

// ParseMethod maps a level/prefab keyword to a method bit.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once":
		return MethodOnce, nil
	case "intervention":
		return MethodIntervention, nil
	case "timer":
		return MethodTimer, nil
	case "toggle":
		return MethodToggle, nil
	}
	return 0, fmt.Errorf("unknown activation method %q", s)
}

// Transition reports an edge on a sender or receiver's active state.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionActivated
	TransitionDeactivated
)

// Sender is a signal-producing node: lever, plate, computer, scanner,
// trigger. Identity is its grid position, immutable after creation.
type Sender struct {
	pos      common.GridPos
	kind     Kind
	methods  Method
	pred     Predicate
	cooldown uint64 // ticks, only meaningful with MethodTimer

	// OnActivate and OnDeactivate are dispatched by the evaluator after the
	// tick's state mutation completes. Panics are recovered; the sender's
	// state is authoritative regardless of hook outcome.
	OnActivate   func()
	OnDeactivate func()

	active   bool
	lastStim bool
	expiry   uint64
	timerSet bool
}

// NewSender creates an inactive sender. cooldown is in ticks and is ignored
// unless methods contains MethodTimer.
func NewSender(pos common.GridPos, kind Kind, methods Method, cooldown uint64, pred Predicate) *Sender {
	return &Sender{
		pos:      pos,
		kind:     kind,
		methods:  methods,
		cooldown: cooldown,
		pred:     pred,
	}
}

func (s *Sender) Pos() common.GridPos { return s.pos }
func (s *Sender) Kind() Kind          { return s.kind }
func (s *Sender) Methods() Method     { return s.methods }
func (s *Sender) Active() bool        { return s.active }

// Evaluate advances the sender one tick against the stimulus and returns the
// resulting edge, if any. A nil or failing predicate counts as false for the
// tick (runtime-recoverable, not an error).
func (s *Sender) Evaluate(tick uint64, stim Stimulus) Transition {
	sat := false
	if s.pred != nil {
		sat = s.pred(stim, s.pos)
	}
	rising := sat && !s.lastStim
	s.lastStim = sat

	prev := s.active
	next := prev

	if s.methods.Has(MethodIntervention) {
		next = sat
	}
	if s.methods.Has(MethodToggle) && rising {
		next = !prev
	}
	if s.methods.Has(MethodOnce) && (prev || sat) {
		next = true
	}

	// A pending timer overrides every other method until it fires. The tick
	// it fires the sender drops to inactive even under live stimulus; a new
	// qualifying edge re-activates and re-arms it.
	if s.methods.Has(MethodTimer) {
		if next && !prev {
			s.expiry = tick + s.cooldown
			s.timerSet = true
		}
		if s.timerSet {
			if tick >= s.expiry {
				s.timerSet = false
				next = false
			} else {
				next = true
			}
		}
	}

	s.active = next
	switch {
	case next && !prev:
		return TransitionActivated
	case !next && prev:
		return TransitionDeactivated
	}
	return TransitionNone
}
