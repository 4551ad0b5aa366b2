package search

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSequencer_NewerRequestSupersedesOlder(t *testing.T) {
	s := NewSequencer()

	firstCtx, first := s.Begin(context.Background(), "sid")
	secondCtx, second := s.Begin(context.Background(), "sid")

	require.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.NoError(t, secondCtx.Err())

	assert.False(t, s.Finish(first))
	assert.True(t, s.Finish(second))
	assert.Equal(t, 0, s.InFlight())
	assert.ErrorIs(t, secondCtx.Err(), context.Canceled)
}

func TestSequencer_KeysAreIndependent(t *testing.T) {
	s := NewSequencer()

	aCtx, a := s.Begin(context.Background(), "a")
	_, b := s.Begin(context.Background(), "b")

	assert.NoError(t, aCtx.Err())
	assert.Equal(t, 2, s.InFlight())
	assert.True(t, s.Finish(a))
	assert.True(t, s.Finish(b))
}

func TestSequencer_FinishTwice(t *testing.T) {
	s := NewSequencer()
	_, tk := s.Begin(context.Background(), "sid")

	assert.True(t, s.Finish(tk))
	assert.False(t, s.Finish(tk))
}

func TestSequencer_ConcurrentOnlyLatestWins(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewSequencer()
	const n = 50

	tickets := make(chan Ticket, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, tk := s.Begin(context.Background(), "sid")
			tickets <- tk
		}()
	}
	wg.Wait()
	close(tickets)

	var latest Ticket
	all := make([]Ticket, 0, n)
	for tk := range tickets {
		all = append(all, tk)
		if tk.Seq > latest.Seq {
			latest = tk
		}
	}

	winners := 0
	for _, tk := range all {
		if s.Finish(tk) {
			winners++
			assert.Equal(t, latest.Seq, tk.Seq)
		}
	}
	assert.Equal(t, 1, winners)
}
