// Package stats turns a simulation trace into per-run estimates and normal
// confidence intervals across runs.
//
// Conventions: sample standard deviation (n-1), z = 1.96, time averages
// weighted by holding time over the observed part of each run.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// Z95 is the two-sided 95% normal quantile.
const Z95 = 1.96

// Interval is a mean with its confidence bounds. With fewer than two samples
// the bounds are NaN.
type Interval struct {
	Mean float64
	Lo   float64
	Hi   float64
	N    int // number of samples
}

// Contains reports whether x lies within [Lo, Hi].
func (iv Interval) Contains(x float64) bool {
	return x >= iv.Lo && x <= iv.Hi
}

// ConfidenceInterval returns mean ± z·s/√n.
func ConfidenceInterval(samples []float64, z float64) Interval {
	iv := Interval{N: len(samples), Mean: math.NaN(), Lo: math.NaN(), Hi: math.NaN()}
	if len(samples) == 0 {
		return iv
	}
	if len(samples) == 1 {
		iv.Mean = samples[0]
		return iv
	}
	mean, std := stat.MeanStdDev(samples, nil)
	half := z * std / math.Sqrt(float64(len(samples)))
	iv.Mean, iv.Lo, iv.Hi = mean, mean-half, mean+half
	return iv
}

// TimeAverageOccupancy is Σ N·holding / Σ holding over one run's entries.
// Returns NaN for a run with no observed time.
func TimeAverageOccupancy(run []trace.Entry) float64 {
	var area, total float64
	for _, e := range run {
		area += float64(e.N) * e.Holding
		total += e.Holding
	}
	if total == 0 {
		return math.NaN()
	}
	return area / total
}

// Utilization is the fraction of observed time with at least one customer.
func Utilization(run []trace.Entry) float64 {
	var busy, total float64
	for _, e := range run {
		if e.N > 0 {
			busy += e.Holding
		}
		total += e.Holding
	}
	if total == 0 {
		return math.NaN()
	}
	return busy / total
}

// MeanSojourn pairs the i-th completion with the i-th arrival of the run and
// averages completion minus arrival. The pairing is exact for FIFO single
// servers. Returns NaN if nothing completed.
func MeanSojourn(run []trace.Entry) float64 {
	var arrivals []float64
	var sum float64
	var done int
	for _, e := range run {
		switch e.Kind {
		case trace.KindArrival:
			arrivals = append(arrivals, e.Time)
		case trace.KindCompletion:
			if done < len(arrivals) {
				sum += e.Time - arrivals[done]
				done++
			}
		}
	}
	if done == 0 {
		return math.NaN()
	}
	return sum / float64(done)
}

// BusyPeriods counts completed busy periods (returns to N=0) of a run and
// whether the run ended inside an unfinished one.
func BusyPeriods(run []trace.Entry) (completed int, open bool) {
	for _, e := range run {
		if e.N == 0 {
			completed++
		}
	}
	if len(run) > 0 {
		open = run[len(run)-1].N > 0
	}
	return completed, open
}

// CompletedBusyPeriods is BusyPeriods without the open flag, shaped for PerRun.
func CompletedBusyPeriods(run []trace.Entry) float64 {
	completed, _ := BusyPeriods(run)
	return float64(completed)
}

// PerRun applies f to every run of t, skipping NaN results.
func PerRun(t *trace.Trace, f func([]trace.Entry) float64) []float64 {
	out := make([]float64, 0, t.Runs())
	for i := 0; i < t.Runs(); i++ {
		if v := f(t.Run(i)); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// StateProbability is the estimated fraction of time spent with N customers.
type StateProbability struct {
	N        int
	Interval Interval
}

// OccupancyPDF estimates P(N=n) per run and aggregates across runs. A run
// that never visited n contributes 0 for that state.
func OccupancyPDF(t *trace.Trace) []StateProbability {
	maxN := 0
	for _, e := range t.Entries {
		maxN = max(maxN, e.N)
	}
	perState := make([][]float64, maxN+1)
	for i := 0; i < t.Runs(); i++ {
		run := t.Run(i)
		share := make([]float64, maxN+1)
		var total float64
		for _, e := range run {
			share[e.N] += e.Holding
			total += e.Holding
		}
		if total == 0 {
			continue
		}
		for n := range share {
			perState[n] = append(perState[n], share[n]/total)
		}
	}
	pdf := make([]StateProbability, 0, maxN+1)
	for n, samples := range perState {
		pdf = append(pdf, StateProbability{N: n, Interval: ConfidenceInterval(samples, Z95)})
	}
	return pdf
}

// Report is the across-run summary of a batch.
type Report struct {
	Runs          int
	MeanOccupancy Interval
	Utilization   Interval
	MeanSojourn   Interval
	BusyPeriods   Interval // completed busy periods per run
}

// Summarize computes the Report of t.
func Summarize(t *trace.Trace) Report {
	return Report{
		Runs:          t.Runs(),
		MeanOccupancy: ConfidenceInterval(PerRun(t, TimeAverageOccupancy), Z95),
		Utilization:   ConfidenceInterval(PerRun(t, Utilization), Z95),
		MeanSojourn:   ConfidenceInterval(PerRun(t, MeanSojourn), Z95),
		BusyPeriods:   ConfidenceInterval(PerRun(t, CompletedBusyPeriods), Z95),
	}
}
