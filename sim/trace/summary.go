package trace

// RunSummary aggregates a single run.
type RunSummary struct {
	Run          int
	Entries      int
	Arrivals     int
	Completions  int
	FinalN       int     // occupancy after the last kept entry
	MaxN         int
	EndTime      float64 // time of the last kept entry
	ObservedTime float64 // sum of holding times
}

// TraceSummary aggregates statistics from a Trace.
type TraceSummary struct {
	Runs        int
	Entries     int
	Arrivals    int
	Completions int
	MaxN        int
	PerRun      []RunSummary
}

// Summarize computes aggregate counts from a Trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace) *TraceSummary {
	summary := &TraceSummary{}
	if t == nil {
		return summary
	}

	summary.Runs = t.Runs()
	summary.PerRun = make([]RunSummary, 0, t.Runs())
	for i := 0; i < t.Runs(); i++ {
		rs := RunSummary{Run: i}
		for _, e := range t.Run(i) {
			rs.Entries++
			switch e.Kind {
			case KindArrival:
				rs.Arrivals++
			case KindCompletion:
				rs.Completions++
			}
			rs.FinalN = e.N
			rs.MaxN = max(rs.MaxN, e.N)
			rs.EndTime = e.Time
			rs.ObservedTime += e.Holding
		}
		summary.Entries += rs.Entries
		summary.Arrivals += rs.Arrivals
		summary.Completions += rs.Completions
		summary.MaxN = max(summary.MaxN, rs.MaxN)
		summary.PerRun = append(summary.PerRun, rs)
	}
	return summary
}
