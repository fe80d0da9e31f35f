package events

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tigerroots/collective/internal/logging"
)

func newTestBus() *InProcBus {
	b := NewInProcBus(logging.NewSlogLogger(slog.New(slog.DiscardHandler)))
	b.baseDelay = time.Millisecond
	return b
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := newTestBus()

	var got atomic.Int32
	b.Subscribe(TopicPlantingCreated, func(ctx context.Context, e Event) error {
		if e.PlantingID != "p-1" {
			t.Errorf("PlantingID = %q", e.PlantingID)
		}
		got.Add(1)
		return nil
	})
	b.Subscribe(TopicPlantingCreated, func(ctx context.Context, e Event) error {
		got.Add(1)
		return nil
	})
	// a different topic must not fire
	b.Subscribe(TopicCheckInCreated, func(ctx context.Context, e Event) error {
		t.Error("wrong topic delivered")
		return nil
	})

	b.Publish(context.Background(), Event{Topic: TopicPlantingCreated, PlantingID: "p-1"})
	b.Wait()

	if got.Load() != 2 {
		t.Fatalf("deliveries = %d, want 2", got.Load())
	}
}

func TestRedeliveryUntilSuccess(t *testing.T) {
	b := newTestBus()

	var attempts atomic.Int32
	b.Subscribe(TopicObjectFinalized, func(ctx context.Context, e Event) error {
		if attempts.Add(1) < 3 {
			return errors.New("transient")
		}
		return nil
	})

	b.Publish(context.Background(), Event{Topic: TopicObjectFinalized, ObjectPath: "plantings/p/x.jpg"})
	b.Wait()

	if attempts.Load() != 3 {
		t.Fatalf("attempts = %d, want 3", attempts.Load())
	}
}

func TestDeliveryOutlivesPublisherContext(t *testing.T) {
	b := newTestBus()

	var delivered atomic.Int32
	release := make(chan struct{})
	b.Subscribe(TopicPlantingCreated, func(ctx context.Context, e Event) error {
		// hold delivery until the publisher's context is gone, the way an
		// HTTP request context ends the moment the handler returns
		<-release
		if err := ctx.Err(); err != nil {
			return err
		}
		delivered.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	b.Publish(ctx, Event{Topic: TopicPlantingCreated, PlantingID: "p-1"})
	cancel()
	close(release)
	b.Wait()

	if delivered.Load() != 1 {
		t.Fatalf("deliveries = %d, want 1: event must survive the publisher", delivered.Load())
	}
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	b := newTestBus()
	b.maxRetries = 2

	var attempts atomic.Int32
	b.Subscribe(TopicCheckInCreated, func(ctx context.Context, e Event) error {
		attempts.Add(1)
		return errors.New("permanent")
	})

	b.Publish(context.Background(), Event{Topic: TopicCheckInCreated, CheckInID: "c-1"})
	b.Wait()

	// initial attempt plus two retries
	if attempts.Load() != 3 {
		t.Fatalf("attempts = %d, want 3", attempts.Load())
	}
}
