package drill

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxMostRecentWins(t *testing.T) {
	mb := NewMailbox()
	mb.Post('a')
	mb.Post('b')

	r, err := mb.Take(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, 'b', r)

	_, err = mb.Take(context.Background(), 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrSessionTimedOut, "the overwritten 'a' must be gone")
}

func TestMailboxTakeWaitsForPost(t *testing.T) {
	mb := NewMailbox()
	go func() {
		time.Sleep(20 * time.Millisecond)
		mb.Post('z')
	}()
	r, err := mb.Take(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, 'z', r)
}

func TestMailboxTakeTimeout(t *testing.T) {
	mb := NewMailbox()
	timeout := 40 * time.Millisecond
	start := time.Now()
	_, err := mb.Take(context.Background(), timeout)
	elapsed := time.Since(start)

	require.True(t, errors.Is(err, ErrSessionTimedOut))
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+500*time.Millisecond)
}

func TestMailboxTakeContextCancelled(t *testing.T) {
	mb := NewMailbox()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := mb.Take(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMailboxConcurrentPostsHoldOne(t *testing.T) {
	mb := NewMailbox()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(r rune) {
			defer wg.Done()
			mb.Post(r)
		}(rune('a' + i%26))
	}
	wg.Wait()

	_, err := mb.Take(context.Background(), time.Second)
	require.NoError(t, err)
	_, err = mb.Take(context.Background(), 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrSessionTimedOut)
}
