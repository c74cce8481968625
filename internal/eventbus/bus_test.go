package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestBusPublishToSubscribers(t *testing.T) {
	bus := NewInquiryEventBus()

	var created, transferred int
	bus.Subscribe(InquiryEventCreated, func(_ context.Context, e InquiryEvent) error {
		created++
		return nil
	})
	bus.Subscribe(InquiryEventTransferred, func(_ context.Context, e InquiryEvent) error {
		transferred++
		return nil
	})

	if err := bus.Publish(context.Background(), InquiryEvent{Type: InquiryEventCreated, InquiryID: "i1"}); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if created != 1 || transferred != 0 {
		t.Fatalf("expected only created handler to fire: created=%d transferred=%d", created, transferred)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewInquiryEventBus()

	var calls int
	unsubscribe := bus.Subscribe(InquiryEventCreated, func(_ context.Context, e InquiryEvent) error {
		calls++
		return nil
	})

	if err := bus.Publish(context.Background(), InquiryEvent{Type: InquiryEventCreated}); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	unsubscribe()
	if err := bus.Publish(context.Background(), InquiryEvent{Type: InquiryEventCreated}); err != nil {
		t.Fatalf("Publish after unsubscribe error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected handler to fire once, got %d", calls)
	}
}

func TestBusJoinsHandlerErrors(t *testing.T) {
	bus := NewInquiryEventBus()

	errBoom := errors.New("boom")
	bus.Subscribe(InquiryEventCreated, func(_ context.Context, e InquiryEvent) error {
		return errBoom
	})
	var secondCalled bool
	bus.Subscribe(InquiryEventCreated, func(_ context.Context, e InquiryEvent) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(context.Background(), InquiryEvent{Type: InquiryEventCreated})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
	if !secondCalled {
		t.Fatalf("expected all handlers to run despite error")
	}
}
