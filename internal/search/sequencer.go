package search

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a search whose result arrived after a newer
// search from the same session was started.
var ErrSuperseded = errors.New("search superseded by a newer request")

// Ticket tags one in-flight request.
type Ticket struct {
	Key string
	Seq uint64
}

type slot struct {
	seq    uint64
	cancel context.CancelFunc
}

// Sequencer orders requests per key. Starting a request cancels the one in
// flight for the same key, and only the latest ticket may publish a result.
type Sequencer struct {
	mu    sync.Mutex
	next  uint64
	slots map[string]slot
}

// NewSequencer returns an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{slots: make(map[string]slot)}
}

// Begin tags a new request for key. The returned context is cancelled when a
// newer request for the same key begins or when Finish is called.
func (s *Sequencer) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	if prev, ok := s.slots[key]; ok {
		prev.cancel()
	}
	s.slots[key] = slot{seq: s.next, cancel: cancel}
	return ctx, Ticket{Key: key, Seq: s.next}
}

// Finish releases the ticket and reports whether it was still the latest
// for its key. A false result means the caller must discard its response.
func (s *Sequencer) Finish(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.slots[t.Key]
	if !ok || current.seq != t.Seq {
		return false
	}
	current.cancel()
	delete(s.slots, t.Key)
	return true
}

// InFlight returns the number of keys with a pending request.
func (s *Sequencer) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}
