package sim

import (
	"container/heap"
	"errors"
)

// ErrEmptyQueue is returned when popping an EventQueue with no pending events.
// The engine checks its bounds first, so seeing this is a defect.
var ErrEmptyQueue = errors.New("event queue is empty")

// EventQueue is a priority queue of pending events.
// Ordering: time, then insertion order (FIFO on ties), so a run replays
// identically for a fixed random stream.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// eventHeap implements heap.Interface.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0, 4)}
	heap.Init(&q.events)
	return q
}

// Schedule inserts e, stamping it with the next insertion sequence number.
func (q *EventQueue) Schedule(e Event) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.events, e)
}

// PopEarliest removes and returns the chronologically first event.
func (q *EventQueue) PopEarliest() (Event, error) {
	if len(q.events) == 0 {
		return Event{}, ErrEmptyQueue
	}
	return heap.Pop(&q.events).(Event), nil
}

// Peek returns the next event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// CountKind returns how many pending events are of kind k.
func (q *EventQueue) CountKind(k EventKind) int {
	n := 0
	for _, e := range q.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
