package session

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSweeperRemovesExpiredSessionsInBackground(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, newSession("expired", time.Now().Add(-2*time.Hour))))
	require.NoError(t, store.Put(ctx, newSession("live", time.Now())))

	sweeper := NewSweeper(SweeperParams{
		Store:    store,
		Interval: 10 * time.Millisecond,
		MaxAge:   time.Hour,
		Logger:   zerolog.Nop(),
	})
	sweeper.Start()
	defer sweeper.Stop()

	require.Eventually(t, func() bool {
		return store.Len() == 1
	}, time.Second, 5*time.Millisecond)

	live, err := store.Get(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, live)
}

func TestSweeperStopTerminates(t *testing.T) {
	sweeper := NewSweeper(SweeperParams{
		Store:    NewMemoryStore(),
		Interval: 10 * time.Millisecond,
		MaxAge:   time.Hour,
		Logger:   zerolog.Nop(),
	})

	sweeper.Start()

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop in time")
	}
}

func TestSweeperDefaults(t *testing.T) {
	sweeper := NewSweeper(SweeperParams{
		Store:  NewMemoryStore(),
		Logger: zerolog.Nop(),
	})

	require.Equal(t, defaultSweepInterval, sweeper.interval)
	require.Equal(t, defaultMaxAge, sweeper.maxAge)
}
