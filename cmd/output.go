package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/markov"
	"github.com/queueing-sim/queueing-sim/sim/stats"
	"github.com/queueing-sim/queueing-sim/sim/trace"
)

func printModel(w io.Writer, m sim.QueueModel) {
	fmt.Fprintf(w, "=== %s: λ=%g μ=%g k=%d ρ=%.4f ===\n",
		sim.Kendall(m), m.ArrivalRate(), m.ServiceRate(), m.Servers(), m.Rho())
}

func formatInterval(iv stats.Interval) string {
	if iv.N == 0 {
		return "n/a"
	}
	if math.IsNaN(iv.Lo) {
		return fmt.Sprintf("%.4f", iv.Mean)
	}
	return fmt.Sprintf("%.4f [%.4f, %.4f]", iv.Mean, iv.Lo, iv.Hi)
}

func printSimulation(w io.Writer, tr *trace.Trace, r stats.Report) {
	summary := trace.Summarize(tr)
	fmt.Fprintln(w, "Simulation, mean over runs with 95 percent interval:")
	fmt.Fprintf(w, "  runs:            %d\n", r.Runs)
	fmt.Fprintf(w, "  trace entries:   %d (%d arrivals, %d completions)\n", summary.Entries, summary.Arrivals, summary.Completions)
	fmt.Fprintf(w, "  max occupancy:   %d\n", summary.MaxN)
	fmt.Fprintf(w, "  mean occupancy:  %s\n", formatInterval(r.MeanOccupancy))
	fmt.Fprintf(w, "  utilization:     %s\n", formatInterval(r.Utilization))
	fmt.Fprintf(w, "  mean sojourn:    %s\n", formatInterval(r.MeanSojourn))
	fmt.Fprintf(w, "  busy periods:    %s\n", formatInterval(r.BusyPeriods))
}

func printOccupancyPDF(w io.Writer, pdf []stats.StateProbability) {
	fmt.Fprintln(w, "Occupancy distribution:")
	for _, sp := range pdf {
		fmt.Fprintf(w, "  P(N=%d) = %s\n", sp.N, formatInterval(sp.Interval))
	}
}

func printAnalysis(w io.Writer, a *analysis, states int) {
	fmt.Fprintf(w, "Markov chain: %s, %d states, residual %.2e\n", a.chain.Kind, a.chain.Capacity, a.residual)
	switch a.chain.Kind {
	case markov.CTMC:
		fmt.Fprintf(w, "  solver:          exp(Q·T), T=%g\n", a.solver.Horizon)
	case markov.DTMC:
		fmt.Fprintf(w, "  solver:          P^n, n=%d\n", a.solver.Power)
	}
	fmt.Fprintf(w, "  mean occupancy:  %.4f (closed form %.4f)\n", a.measures.MeanOccupancy, a.closedForm.MeanOccupancy)
	fmt.Fprintf(w, "  utilization:     %.4f (closed form %.4f)\n", a.measures.Utilization, a.closedForm.Utilization)
	fmt.Fprintf(w, "  mean sojourn:    %.4f (closed form %.4f)\n", a.measures.MeanSojourn, a.closedForm.MeanSojourn)
	if !a.measures.Stable {
		fmt.Fprintln(w, "  ρ >= 1: no stationary regime, the truncated distribution is reported as is")
	}
	fmt.Fprintln(w, "Stationary distribution:")
	for i := 0; i < min(states, len(a.pi)); i++ {
		fmt.Fprintf(w, "  π[%d] = %.6f\n", i, a.pi[i])
	}
}

func printComparison(w io.Writer, r stats.Report, a *analysis) {
	fmt.Fprintf(w, "%-16s %-32s %-12s %-12s\n", "measure", "simulated", "chain", "closed form")
	rows := []struct {
		name      string
		simulated stats.Interval
		chain, cf float64
	}{
		{"mean occupancy", r.MeanOccupancy, a.measures.MeanOccupancy, a.closedForm.MeanOccupancy},
		{"utilization", r.Utilization, a.measures.Utilization, a.closedForm.Utilization},
		{"mean sojourn", r.MeanSojourn, a.measures.MeanSojourn, a.closedForm.MeanSojourn},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-16s %-32s %-12.4f %-12.4f\n", row.name, formatInterval(row.simulated), row.chain, row.cf)
	}
}
