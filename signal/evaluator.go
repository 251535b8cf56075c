package signal

import (
	"errors"
	"fmt"

	"github.com/hollowroot/relay/common"
)

// State is the level instance's lifecycle. No transition skips Ready and no
// tick evaluation happens before it.
type State int

const (
	StateLoading State = iota
	StateReady
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// ErrNoReceivers is returned when a level declares an exit location but has
// no receivers at all: the level can never complete.
var ErrNoReceivers = errors.New("signal: level has an exit but no receivers")

// Evaluator drives one evaluation pass per simulation tick: all senders
// first, then all receivers, both in level-load creation order, then a
// single terminal check. It is the sole writer of graph state.
type Evaluator struct {
	arena     *Arena
	receivers []*Receiver

	exit    common.GridPos
	hasExit bool

	state  State
	tick   uint64
	events EventQueue

	// OnComplete fires once, on the Running -> Completed transition.
	OnComplete func()
	// OnHookPanic receives recovered sender hook panics; state is already
	// committed when hooks run, so a failing hook never affects it.
	OnHookPanic func(pos common.GridPos, v any)

	completePending bool
	completed       bool
	abortErr        error
}

// NewEvaluator wires the evaluator over a linked graph. Pass hasExit=false
// for levels with no exit receiver (hub levels).
func NewEvaluator(arena *Arena, receivers []*Receiver, exit common.GridPos, hasExit bool) (*Evaluator, error) {
	if arena == nil {
		return nil, errors.New("signal: nil arena")
	}
	if hasExit && len(receivers) == 0 {
		return nil, ErrNoReceivers
	}
	return &Evaluator{
		arena:     arena,
		receivers: receivers,
		exit:      exit,
		hasExit:   hasExit,
	}, nil
}

func (e *Evaluator) State() State { return e.state }

// Err returns the abort cause, if the evaluator is aborted.
func (e *Evaluator) Err() error { return e.abortErr }

// Abort marks the level unrecoverable. Used by the shell for load-fatal
// conditions (missing player, missing mandatory geometry).
func (e *Evaluator) Abort(err error) {
	if e.state == StateCompleted || e.state == StateAborted {
		return
	}
	e.state = StateAborted
	if err == nil {
		err = errors.New("signal: aborted")
	}
	e.abortErr = fmt.Errorf("level aborted: %w", err)
}

// Tick runs one evaluation pass and returns the transition events it
// produced. Before a player exists the evaluator idles in Loading; the first
// tick with a present player enters Ready, and evaluation starts the tick
// after that.
func (e *Evaluator) Tick(stim Stimulus) []Event {
	switch e.state {
	case StateAborted, StateCompleted:
		return nil
	case StateLoading:
		if stim.PlayerPresent {
			e.state = StateReady
		}
		return nil
	case StateReady:
		e.state = StateRunning
	}

	if e.completePending {
		e.state = StateCompleted
		e.events.Push(Event{Kind: EventLevelCompleted, Pos: e.exit})
		if !e.completed {
			e.completed = true
			if e.OnComplete != nil {
				e.OnComplete()
			}
		}
		return e.events.Drain()
	}

	e.tick++

	type edge struct {
		sender *Sender
		tr     Transition
	}
	var edges []edge

	for _, s := range e.arena.Senders() {
		tr := s.Evaluate(e.tick, stim)
		if tr == TransitionNone {
			continue
		}
		edges = append(edges, edge{sender: s, tr: tr})
		kind := EventSenderActivated
		if tr == TransitionDeactivated {
			kind = EventSenderDeactivated
		}
		e.events.Push(Event{Kind: kind, Pos: s.Pos()})
	}

	for _, r := range e.receivers {
		prev := r.Active()
		now := r.Recompute(e.arena)
		if now == prev {
			continue
		}
		kind := EventReceiverOpened
		if !now {
			kind = EventReceiverClosed
		}
		e.events.Push(Event{Kind: kind, Pos: r.Pos()})
		if e.hasExit && r.Pos() == e.exit && now {
			e.completePending = true
		}
	}

	// Hooks run after all state mutation for the tick is committed.
	for _, ed := range edges {
		switch ed.tr {
		case TransitionActivated:
			e.dispatch(ed.sender.Pos(), ed.sender.OnActivate)
		case TransitionDeactivated:
			e.dispatch(ed.sender.Pos(), ed.sender.OnDeactivate)
		}
	}

	return e.events.Drain()
}

func (e *Evaluator) dispatch(pos common.GridPos, hook func()) {
	if hook == nil {
		return
	}
	defer func() {
		if v := recover(); v != nil && e.OnHookPanic != nil {
			e.OnHookPanic(pos, v)
		}
	}()
	hook()
}
