package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultSweepInterval = 10 * time.Minute
	defaultMaxAge        = time.Hour
)

// Sweeper periodically removes expired sessions from a MemoryStore. It runs
// independently of request traffic and must never affect request handling.
type Sweeper struct {
	store    *MemoryStore
	interval time.Duration
	maxAge   time.Duration
	logger   zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}
type SweeperParams struct {
	Store    *MemoryStore
	Interval time.Duration
	MaxAge   time.Duration
	Logger   zerolog.Logger
}

// NewSweeper creates a new session sweeper
func NewSweeper(params SweeperParams) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())

	interval := params.Interval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}

	return &Sweeper{
		store:    params.Store,
		interval: interval,
		maxAge:   maxAge,
		logger:   params.Logger.With().Str("component", "session_sweeper").Logger(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the sweep loop
func (s *Sweeper) Start() {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("max_age", s.maxAge).
		Msg("Starting session sweeper")

	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop gracefully stops the sweeper
func (s *Sweeper) Stop() {
	s.logger.Info().Msg("Stopping session sweeper")
	s.cancel()
	s.wg.Wait()
}

// sweepLoop runs the periodic sweep
func (s *Sweeper) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.ctx.Done():
			s.logger.Info().Msg("Sweeper loop stopped")
			return
		}
	}
}

// sweep removes expired sessions
func (s *Sweeper) sweep() {
	removed := s.store.Sweep(time.Now(), s.maxAge)

	if removed > 0 {
		s.logger.Info().
			Int("removed", removed).
			Int("remaining", s.store.Len()).
			Msg("Swept expired sessions")
	}
}
