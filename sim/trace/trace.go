// Package trace holds the occupancy trace produced by simulation runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

import "fmt"

// Kind tags an entry as an arrival ("a") or a service completion ("s").
type Kind string

const (
	// KindArrival marks an entry whose event raised occupancy by one.
	KindArrival Kind = "a"
	// KindCompletion marks an entry whose event lowered occupancy by one.
	KindCompletion Kind = "s"
)

// Entry records one processed event of one run.
type Entry struct {
	Run         int     // replication index
	Time        float64 // event time
	Kind        Kind
	Duration    float64 // service length; meaningful only when HasDuration
	HasDuration bool
	N           int     // occupancy immediately after the event
	Holding     float64 // time until the next event of the same run
}

// Trace is the ordered concatenation of the entries of several runs.
// Entries of a run are contiguous and appear in run order.
type Trace struct {
	Entries []Entry
	bounds  []span // bounds[i] locates run i in Entries
}

type span struct{ start, end int }

// NewTrace creates an empty trace ready for recording.
func NewTrace() *Trace {
	return &Trace{Entries: make([]Entry, 0)}
}

// AppendRun appends the entries of the next run. Every entry must carry the
// run index equal to the number of runs already recorded.
func (t *Trace) AppendRun(entries []Entry) {
	run := len(t.bounds)
	for i := range entries {
		if entries[i].Run != run {
			panic(fmt.Sprintf("AppendRun: entry %d has run %d, want %d", i, entries[i].Run, run))
		}
	}
	start := len(t.Entries)
	t.Entries = append(t.Entries, entries...)
	t.bounds = append(t.bounds, span{start: start, end: len(t.Entries)})
}

// Runs returns the number of recorded runs, including runs that kept no entries.
func (t *Trace) Runs() int {
	return len(t.bounds)
}

// Run returns the entries of run i. The slice aliases the trace storage and
// must not be modified.
func (t *Trace) Run(i int) []Entry {
	b := t.bounds[i]
	return t.Entries[b.start:b.end:b.end]
}

// Len returns the total number of entries.
func (t *Trace) Len() int {
	return len(t.Entries)
}
