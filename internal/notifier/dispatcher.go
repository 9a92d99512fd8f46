package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultQueueSize = 100
	sendTimeout      = 10 * time.Second
)

// Sink получатель событий о новых бронированиях
type Sink interface {
	Name() string
	Send(ctx context.Context, event model.BookingEvent) error
}

// Dispatcher доставляет события в синки в отдельной горутине.
// Announce никогда не блокирует вызывающего: при переполненной очереди событие отбрасывается.
type Dispatcher struct {
	sinks  []Sink
	queue  chan model.BookingEvent
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(queueSize int, logger *zap.Logger, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		sinks:  sinks,
		queue:  make(chan model.BookingEvent, queueSize),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start запускает воркер доставки
func (d *Dispatcher) Start() {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	d.logger.Info("Starting notification dispatcher", zap.Strings("sinks", names))

	go d.run()
}

// Announce ставит событие в очередь
func (d *Dispatcher) Announce(event model.BookingEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Dispatcher stopped, event dropped", zap.String("event_id", event.ID))
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn("Notification queue is full, event dropped",
			zap.String("event_id", event.ID),
			zap.Int64("booking_id", event.Booking.ID),
		)
	}
}

// Stop закрывает очередь и ждёт доставки оставшихся событий
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		d.logger.Info("Notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.queue {
		d.deliver(event)
	}
}

// deliver отправляет событие во все синки; ошибки только логируются
func (d *Dispatcher) deliver(event model.BookingEvent) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := sink.Send(ctx, event)
		cancel()

		if err != nil {
			d.logger.Error("Failed to deliver booking event",
				zap.String("sink", sink.Name()),
				zap.String("event_id", event.ID),
				zap.Int64("booking_id", event.Booking.ID),
				zap.Error(err),
			)
			continue
		}

		d.logger.Debug("Booking event delivered",
			zap.String("sink", sink.Name()),
			zap.String("event_id", event.ID),
		)
	}
}
