package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDispatcherDeliversInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var got []string
	d.Subscribe(EventArticleCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.ID)
		return nil
	})
	d.Subscribe(EventArticleCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.ID)
		return nil
	})

	err := d.Publish(context.Background(), Event{
		ID:        "e1",
		Type:      EventArticleCreated,
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 2 || got[0] != "first:e1" || got[1] != "second:e1" {
		t.Errorf("delivery = %v", got)
	}
}

func TestDispatcherContinuesAfterHandlerFailure(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var reached bool
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{ID: "e1", Type: EventUserLoggedIn}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !reached {
		t.Error("second handler not reached after first failed")
	}
}

func TestDispatcherIgnoresUnrelatedTypes(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var called bool
	d.Subscribe(EventArticleDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{ID: "e1", Type: EventArticleCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if called {
		t.Error("handler called for unrelated event type")
	}
}
