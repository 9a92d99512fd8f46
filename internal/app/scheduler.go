package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionSweeper удаляет сессии диалога, простаивающие дольше заданного времени
type SessionSweeper interface {
	Sweep(idle time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sessions SessionSweeper
	idle     time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик; idle <= 0 отключает очистку сессий
func NewScheduler(sessions SessionSweeper, idle time.Duration, logger *zap.Logger) *Scheduler {
	interval := idle / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Scheduler{
		sessions: sessions,
		idle:     idle,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	if s.idle <= 0 {
		s.logger.Info("Session sweeper disabled")
		close(s.done)
		return
	}

	s.logger.Info("Starting background scheduler",
		zap.Duration("session_idle_timeout", s.idle),
		zap.Duration("interval", s.interval),
	)
	go s.runSessionSweepTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	<-s.done
}

// runSessionSweepTask периодически удаляет брошенные диалоги
func (s *Scheduler) runSessionSweepTask(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			s.logger.Info("Session sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session sweep task cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep() {
	if removed := s.sessions.Sweep(s.idle); removed > 0 {
		s.logger.Info("Expired dialogue sessions removed", zap.Int("count", removed))
	}
}
