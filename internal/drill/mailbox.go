// Package drill implements the typing drill session engine.
package drill

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionTimedOut is returned when no keystroke arrives within the idle timeout.
var ErrSessionTimedOut = errors.New("session timed out")

// Mailbox is a single-slot keystroke handoff. A new keystroke replaces any
// pending one that has not been taken yet, so bursts faster than the engine
// consumes them lose characters.
type Mailbox struct {
	mu   sync.Mutex
	slot chan rune
}

// NewMailbox returns an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{slot: make(chan rune, 1)}
}

// Post stores r, discarding any pending keystroke.
func (m *Mailbox) Post(r rune) {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-m.slot:
	default:
	}
	m.slot <- r
}

// Take blocks until a keystroke is available, the timeout elapses or ctx is done.
func (m *Mailbox) Take(ctx context.Context, timeout time.Duration) (rune, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-m.slot:
		return r, nil
	case <-timer.C:
		return 0, ErrSessionTimedOut
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
