package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryBus fans events out to in-process subscribers. The whole application
// is a single process with single-session state, so a broker would only add
// an external dependency; the Publisher/Subscriber interfaces stay narrow
// enough to swap one in if that ever changes.
type MemoryBus struct {
	log      *zap.Logger
	mu       sync.RWMutex
	handlers map[string][]func(Event)
}

func NewMemoryBus(log *zap.Logger) *MemoryBus {
	return &MemoryBus{
		log:      log,
		handlers: make(map[string][]func(Event)),
	}
}

func (b *MemoryBus) Publish(ctx context.Context, stream string, event Event) error {
	b.mu.RLock()
	handlers := make([]func(Event), len(b.handlers[stream]))
	copy(handlers, b.handlers[stream])
	b.mu.RUnlock()

	for _, handler := range handlers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		handler(event)
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, stream string, handler func(Event)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[stream] = append(b.handlers[stream], handler)
	return nil
}
