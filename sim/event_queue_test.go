package sim

import (
	"errors"
	"testing"
)

// TestEventQueue_TimestampOrdering tests that events are popped in time order
func TestEventQueue_TimestampOrdering(t *testing.T) {
	q := NewEventQueue()

	// Add events with different times in random order
	q.Schedule(NewArrivalEvent(1.0))
	q.Schedule(NewArrivalEvent(0.5))
	q.Schedule(NewCompletionEvent(1.0, 0.5))

	want := []float64{0.5, 1.0, 1.5}
	for i, w := range want {
		ev, err := q.PopEarliest()
		if err != nil {
			t.Fatalf("pop %d: unexpected error %v", i, err)
		}
		if ev.Time != w {
			t.Errorf("pop %d: time = %v, want %v", i, ev.Time, w)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty, len = %d", q.Len())
	}
}

// TestEventQueue_FIFOTieBreak tests same-time events pop in insertion order
func TestEventQueue_FIFOTieBreak(t *testing.T) {
	q := NewEventQueue()

	q.Schedule(NewCompletionEvent(0, 2))
	q.Schedule(NewArrivalEvent(2))
	q.Schedule(NewCompletionEvent(1, 1))
	q.Schedule(NewArrivalEvent(0.1))

	first, _ := q.PopEarliest()
	if first.Time != 0.1 {
		t.Fatalf("first time = %v, want 0.1", first.Time)
	}
	wantKinds := []EventKind{ServiceCompletion, Arrival, ServiceCompletion}
	wantDur := []float64{2, 0, 1}
	for i := range wantKinds {
		ev, _ := q.PopEarliest()
		if ev.Kind != wantKinds[i] || ev.Duration != wantDur[i] {
			t.Errorf("tie %d: got %v, want kind %s duration %v", i, ev, wantKinds[i], wantDur[i])
		}
	}
}

func TestEventQueue_PopEmpty_ReturnsErrEmptyQueue(t *testing.T) {
	q := NewEventQueue()
	_, err := q.PopEarliest()
	if !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("expected ErrEmptyQueue, got %v", err)
	}
	if _, ok := q.Peek(); ok {
		t.Error("Peek on empty queue should report false")
	}
}

func TestEventQueue_PeekDoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(NewArrivalEvent(3))
	q.Schedule(NewCompletionEvent(0, 1))

	ev, ok := q.Peek()
	if !ok || ev.Kind != ServiceCompletion {
		t.Fatalf("Peek = %v, %v; want the completion at 1", ev, ok)
	}
	if q.Len() != 2 {
		t.Errorf("Len after Peek = %d, want 2", q.Len())
	}
	if got := q.CountKind(Arrival); got != 1 {
		t.Errorf("CountKind(Arrival) = %d, want 1", got)
	}
}

// TestEventQueue_ManyEqualTimes checks FIFO holds beyond a handful of entries,
// where heap sift-down would otherwise reorder equal keys.
func TestEventQueue_ManyEqualTimes(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 100; i++ {
		q.Schedule(NewArrivalEvent(5))
	}
	prevSeq := uint64(0)
	for i := 0; i < 100; i++ {
		ev, err := q.PopEarliest()
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 && ev.seq <= prevSeq {
			t.Fatalf("pop %d: seq %d after %d, FIFO broken", i, ev.seq, prevSeq)
		}
		prevSeq = ev.seq
	}
}
