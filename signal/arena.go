package signal

import (
	"fmt"

	"github.com/hollowroot/relay/common"
)

// Arena owns every sender in a level, in creation order. Receivers hold
// position keys into it instead of owning senders, so cross-references stay
// weak and teardown is the arena being dropped with the level.
type Arena struct {
	senders []*Sender
	byPos   map[common.GridPos]*Sender
}

func NewArena() *Arena {
	return &Arena{byPos: map[common.GridPos]*Sender{}}
}

// Add registers a sender. Two senders at one grid position is a load-time
// invariant violation.
func (a *Arena) Add(s *Sender) error {
	if s == nil {
		return fmt.Errorf("arena: nil sender")
	}
	if _, ok := a.byPos[s.pos]; ok {
		return fmt.Errorf("arena: duplicate sender at %s", s.pos)
	}
	a.senders = append(a.senders, s)
	a.byPos[s.pos] = s
	return nil
}

// At resolves the sender at pos, if any.
func (a *Arena) At(pos common.GridPos) (*Sender, bool) {
	s, ok := a.byPos[pos]
	return s, ok
}

// Senders returns all senders in creation order. The slice is the arena's
// own; callers must not mutate it.
func (a *Arena) Senders() []*Sender { return a.senders }

func (a *Arena) Len() int { return len(a.senders) }
