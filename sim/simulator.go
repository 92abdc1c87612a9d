// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// RunState is the engine lifecycle: Running until a bound is hit, then Terminated.
type RunState int

const (
	// Running accepts further steps.
	Running RunState = iota
	// Terminated means a bound was reached; Run returns without stepping.
	Terminated
)

// Simulator drives one trajectory of a QueueModel: it holds the clock, the
// occupancy state and the pending events of a single run.
type Simulator struct {
	Clock      float64
	N          int   // customers in the system
	Busy       int   // servers currently serving, always min(N, k)
	EventCount int64 // processed events
	RunIndex   int   // copied into every trace entry

	Model   QueueModel
	Horizon HorizonConfig

	queue    *EventQueue
	arrivals *VariateSource
	service  *VariateSource
	state    RunState
	entries  []trace.Entry
}

// NewSimulator prepares a run in the Running state with a single arrival
// pending at time 0. Interarrival times are drawn from arrivals and service
// times from service; the two may be the same source.
func NewSimulator(model QueueModel, horizon HorizonConfig, arrivals, service *VariateSource) *Simulator {
	if model == nil {
		panic("NewSimulator: model must not be nil")
	}
	if arrivals == nil || service == nil {
		panic("NewSimulator: variate sources must not be nil")
	}
	s := &Simulator{
		Model:    model,
		Horizon:  horizon,
		queue:    NewEventQueue(),
		arrivals: arrivals,
		service:  service,
		state:    Running,
		entries:  make([]trace.Entry, 0, min(max(horizon.MaxEvents, 0), 1<<16)),
	}
	s.queue.Schedule(NewArrivalEvent(0))
	return s
}

// State returns the lifecycle state of the run.
func (sim *Simulator) State() RunState {
	return sim.state
}

// Pending returns the number of scheduled but unprocessed events.
func (sim *Simulator) Pending() int {
	return sim.queue.Len()
}

// PendingCompletions returns the number of scheduled service completions.
func (sim *Simulator) PendingCompletions() int {
	return sim.queue.CountKind(ServiceCompletion)
}

// done is the terminal condition, checked before every step.
func (sim *Simulator) done() bool {
	return sim.EventCount >= sim.Horizon.MaxEvents || sim.Clock >= sim.Horizon.MaxTime
}

// Run steps until a bound is reached and returns the recorded entries in
// event order. Holding times are left zero: the run does not know the time of
// the event after its last one. RunBatch fills them in.
func (sim *Simulator) Run() []trace.Entry {
	for sim.state == Running {
		if sim.done() {
			sim.state = Terminated
			break
		}
		sim.Step()
	}
	logrus.Debugf("[run %d] terminated at t=%.4f after %d events, N=%d", sim.RunIndex, sim.Clock, sim.EventCount, sim.N)
	return sim.entries
}

// Step processes the earliest pending event.
func (sim *Simulator) Step() {
	ev, err := sim.queue.PopEarliest()
	if err != nil {
		// An arrival is always pending, so this is a broken invariant.
		panic(fmt.Sprintf("Simulator.Step: %v", err))
	}
	sim.Clock = ev.Time

	switch ev.Kind {
	case Arrival:
		sim.N++
		if sim.Model.ShouldScheduleOnArrival(sim.N) {
			sim.startService()
		}
		sim.queue.Schedule(NewArrivalEvent(sim.Clock + sim.arrivals.Exponential(sim.Model.ArrivalRate())))
	case ServiceCompletion:
		sim.N--
		sim.Busy--
		if sim.Model.ShouldScheduleOnDeparture(sim.N) {
			sim.startService()
		}
	}
	logrus.Tracef("[run %d][t=%.6f] %s N=%d busy=%d", sim.RunIndex, sim.Clock, ev.Kind, sim.N, sim.Busy)

	sim.entries = append(sim.entries, trace.Entry{
		Run:         sim.RunIndex,
		Time:        ev.Time,
		Kind:        ev.Kind.TraceKind(),
		Duration:    ev.Duration,
		HasDuration: ev.HasDuration,
		N:           sim.N,
	})
	sim.EventCount++
}

// startService occupies a server and schedules its completion.
func (sim *Simulator) startService() {
	d := sim.Model.DrawServiceDuration(sim.service)
	sim.Busy++
	sim.queue.Schedule(NewCompletionEvent(sim.Clock, d))
}

// Simulate runs a single trajectory of cfg as run 0 of key. An unsupported
// model fails with ErrInvalidModel before any event is scheduled.
func Simulate(cfg ModelConfig, horizon HorizonConfig, key SimulationKey) ([]trace.Entry, error) {
	model, err := NewQueueModel(cfg)
	if err != nil {
		return nil, err
	}
	if err := horizon.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(key)
	s := NewSimulator(model, horizon,
		NewVariateSource(rng.ForSubsystem(SubsystemArrivals(0))),
		NewVariateSource(rng.ForSubsystem(SubsystemService(0))))
	return s.Run(), nil
}
