package sim

import (
	"fmt"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// EventKind distinguishes the two event types that drive a queue trajectory.
type EventKind int

const (
	// Arrival increases occupancy by one.
	Arrival EventKind = iota
	// ServiceCompletion decreases occupancy by one.
	ServiceCompletion
)

// String returns the single-letter tag used in traces ("a" or "s").
func (k EventKind) String() string {
	switch k {
	case Arrival:
		return "a"
	case ServiceCompletion:
		return "s"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a pending arrival or service completion.
// Events are immutable once scheduled and consumed exactly once.
type Event struct {
	Kind EventKind
	Time float64 // simulation time at which the event fires
	// Duration is the service length; only set on completions (HasDuration).
	Duration    float64
	HasDuration bool

	seq uint64 // insertion order, assigned by EventQueue.Schedule
}

// NewArrivalEvent creates an arrival at time t.
func NewArrivalEvent(t float64) Event {
	return Event{Kind: Arrival, Time: t}
}

// NewCompletionEvent creates the completion of a service that started at start
// and lasts duration.
func NewCompletionEvent(start, duration float64) Event {
	return Event{Kind: ServiceCompletion, Time: start + duration, Duration: duration, HasDuration: true}
}

func (e Event) String() string {
	if e.HasDuration {
		return fmt.Sprintf("%s@%.6f(d=%.6f)", e.Kind, e.Time, e.Duration)
	}
	return fmt.Sprintf("%s@%.6f", e.Kind, e.Time)
}

// TraceKind maps the event kind to its trace tag. Panics on an unknown kind.
func (k EventKind) TraceKind() trace.Kind {
	switch k {
	case Arrival:
		return trace.KindArrival
	case ServiceCompletion:
		return trace.KindCompletion
	default:
		panic(fmt.Sprintf("EventKind.TraceKind: unknown kind %d", int(k)))
	}
}
