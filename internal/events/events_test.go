package events

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	got    []Event
	closed bool
	closes int
}

func (r *recordingPublisher) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ev)
	return nil
}

func (r *recordingPublisher) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closes++
	r.closed = true
	return nil
}

func TestDispatcher_PublishesAndCloses(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(pub, nil)

	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ev := New(TypeAppointmentCompleted, 1, at)
	ev.AppointmentID = 10
	d.Dispatch(ev)

	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !pub.closed {
		t.Fatalf("publisher not closed")
	}
	if len(pub.got) != 1 || pub.got[0].AppointmentID != 10 || pub.got[0].ID == "" {
		t.Fatalf("unexpected events %+v", pub.got)
	}
}

func TestDispatcher_CloseTwiceAndDispatchAfterClose(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(pub, zap.NewNop())

	if err := d.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	d.Dispatch(New(TypeAppointmentCancelled, 1, time.Now()))

	if pub.closes != 1 {
		t.Fatalf("publisher should be closed once, got %d", pub.closes)
	}
	if len(pub.got) != 0 {
		t.Fatalf("event after close must be dropped, got %+v", pub.got)
	}
}

func TestNewPublisher_LogOnlyWithoutBrokers(t *testing.T) {
	pub := NewPublisher(" , ", "topic", zap.NewNop())
	if _, ok := pub.(*LogPublisher); !ok {
		t.Fatalf("expected LogPublisher, got %T", pub)
	}
	if err := pub.Publish(context.Background(), New(TypeAppointmentCancelled, 1, time.Now())); err != nil {
		t.Fatalf("log publisher should never fail: %v", err)
	}

	if _, ok := NewPublisher("localhost:9092", "topic", zap.NewNop()).(*KafkaPublisher); !ok {
		t.Fatalf("expected KafkaPublisher when brokers are set")
	}
}

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" a:9092, ,b:9092 ")
	if want := []string{"a:9092", "b:9092"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
