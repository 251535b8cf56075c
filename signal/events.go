package signal

import "github.com/hollowroot/relay/common"

// EventKind identifies a transition event emitted during a tick.
type EventKind string

const (
	EventSenderActivated   EventKind = "sender_activated"
	EventSenderDeactivated EventKind = "sender_deactivated"
	EventReceiverOpened    EventKind = "receiver_opened"
	EventReceiverClosed    EventKind = "receiver_closed"
	EventLevelCompleted    EventKind = "level_completed"
)

// Event records an edge transition. State mutation is computed first; events
// are queued and consumed after the tick completes, so effect dispatch never
// runs inside state mutation.
type Event struct {
	Kind EventKind
	Pos  common.GridPos
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
