package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_StampsAndRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventSessionLogin, func(_ context.Context, e Event) error {
		got = append(got, e)
		return errors.New("first failed")
	})
	d.Subscribe(EventSessionLogin, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventSessionLogout, func(_ context.Context, e Event) error {
		t.Fatal("logout handler must not run")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventSessionLogin, SessionID: "sid"})
	require.EqualError(t, err, "first failed")
	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
	assert.Equal(t, got[0].ID, got[1].ID)
}

func TestPublish_KeepsGivenID(t *testing.T) {
	d := NewInMemoryDispatcher()
	var id string
	d.Subscribe(EventProfileDeleted, func(_ context.Context, e Event) error {
		id = e.ID
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{ID: "e1", Type: EventProfileDeleted}))
	assert.Equal(t, "e1", id)
}

func TestSubscribeAll(t *testing.T) {
	d := NewInMemoryDispatcher()
	seen := map[EventType]int{}
	SubscribeAll(d, func(_ context.Context, e Event) error {
		seen[e.Type]++
		return nil
	}, SessionEvents...)

	for _, et := range SessionEvents {
		require.NoError(t, d.Publish(context.Background(), Event{Type: et}))
	}
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventProfileUpdated}))

	assert.Len(t, seen, len(SessionEvents))
	assert.Zero(t, seen[EventProfileUpdated])
}
