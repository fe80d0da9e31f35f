// Package events provides the in-process event bus the pipelines hang off:
// explicit subscription of handlers per topic, with an at-least-once delivery
// contract. A handler error triggers bounded exponential redelivery; handlers
// must therefore be safe to re-run. After the final attempt the failure is
// logged and the event is dropped, which leaves the underlying record in its
// unfinished, re-triable state.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/tigerroots/collective/internal/logging"
)

const (
	TopicPlantingCreated = "planting.created"
	TopicCheckInCreated  = "checkin.created"
	TopicObjectFinalized = "object.finalized"
)

// Event is the payload delivered to handlers. Only the fields relevant to the
// topic are populated.
type Event struct {
	Topic      string
	PlantingID string
	CheckInID  string
	ObjectPath string
}

// Handler reacts to one delivered event. Returning an error requests
// redelivery.
type Handler func(ctx context.Context, e Event) error

type Bus interface {
	Subscribe(topic string, h Handler)
	Publish(ctx context.Context, e Event)
}

// InProcBus dispatches each published event to every subscribed handler in
// its own goroutine, so triggers run as independent units of work.
type InProcBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
	logger   logging.Logger

	maxRetries uint64
	baseDelay  time.Duration
}

func NewInProcBus(logger logging.Logger) *InProcBus {
	return &InProcBus{
		handlers:   make(map[string][]Handler),
		logger:     logger.With("module", "events"),
		maxRetries: 5,
		baseDelay:  200 * time.Millisecond,
	}
}

func (b *InProcBus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

func (b *InProcBus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	hs := b.handlers[e.Topic]
	b.mu.RUnlock()

	// The publisher's context ends with its request; delivery and redelivery
	// must outlive it or the backoff loop aborts before the first attempt.
	ctx = context.WithoutCancel(ctx)

	for _, h := range hs {
		h := h
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.deliver(ctx, e, h)
		}()
	}
}

func (b *InProcBus) deliver(ctx context.Context, e Event, h Handler) {
	backoff := retry.WithMaxRetries(b.maxRetries, retry.NewExponential(b.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := h(ctx, e); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	if err != nil {
		b.logger.Error(ctx, "handler gave up, event dropped",
			"topic", e.Topic, "planting_id", e.PlantingID, "checkin_id", e.CheckInID,
			"object_path", e.ObjectPath, "error", err.Error())
	}
}

// Wait blocks until all in-flight deliveries finish. Used on shutdown and in
// tests.
func (b *InProcBus) Wait() {
	b.wg.Wait()
}
