package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (s *countingSweeper) Sweep(idle time.Duration) int {
	s.calls.Add(1)
	s.idle.Store(int64(idle))
	return 1
}

func TestScheduler_Sweeps(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewScheduler(sweeper, time.Hour, zap.NewNop())
	s.interval = 5 * time.Millisecond

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int64(time.Hour), sweeper.idle.Load())
}

func TestScheduler_Disabled(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewScheduler(sweeper, 0, zap.NewNop())

	s.Start(context.Background())
	s.Stop()

	assert.Zero(t, sweeper.calls.Load())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(&countingSweeper{}, time.Hour, zap.NewNop())

	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestNewScheduler_MinimumInterval(t *testing.T) {
	s := NewScheduler(&countingSweeper{}, 10*time.Second, zap.NewNop())

	assert.Equal(t, time.Minute, s.interval)
}
