package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher publica fora do caminho da requisição, como o audit.
type Dispatcher struct {
	publisher Publisher
	queue     chan Event
	done      chan struct{}
	logger    *zap.Logger
	timeout   time.Duration

	mu       sync.RWMutex
	closed   bool
	once     sync.Once
	closeErr error
}

func NewDispatcher(publisher Publisher, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		publisher: publisher,
		queue:     make(chan Event, 256),
		done:      make(chan struct{}),
		logger:    logger,
		timeout:   5 * time.Second,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.publisher.Publish(ctx, ev)
		cancel()
		if err != nil {
			d.logger.Error("event publish failed",
				zap.String("event_type", ev.Type),
				zap.String("event_id", ev.ID),
				zap.Error(err),
			)
		}
	}
}

// Dispatch depois de Close descarta o evento.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("event dispatcher closed, dropping event",
			zap.String("event_type", ev.Type),
			zap.String("event_id", ev.ID),
		)
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("event queue full, dropping event",
			zap.String("event_type", ev.Type),
			zap.String("event_id", ev.ID),
		)
	}
}

// Close drena a fila e fecha o publisher uma única vez; chamadas
// seguintes devolvem o mesmo resultado.
func (d *Dispatcher) Close() error {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()

		<-d.done
		d.closeErr = d.publisher.Close()
	})
	return d.closeErr
}
