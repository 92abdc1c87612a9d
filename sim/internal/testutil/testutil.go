// Package testutil provides shared test infrastructure for the queue simulator.
// It consolidates assertion helpers used across sim/, sim/markov/ and
// sim/stats/ test packages.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertRunInvariants checks one run that started empty: time never
// decreases, N moves by exactly ±1 per entry in the direction of the entry's
// kind, and N is never negative.
func AssertRunInvariants(t *testing.T, run []trace.Entry) {
	t.Helper()
	prevN, prevTime := 0, 0.0
	for i, e := range run {
		if e.Time < prevTime {
			t.Fatalf("entry %d: time %v < previous %v", i, e.Time, prevTime)
		}
		want := prevN + 1
		if e.Kind == trace.KindCompletion {
			want = prevN - 1
		}
		if e.N != want {
			t.Fatalf("entry %d (%s): N=%d, want %d", i, e.Kind, e.N, want)
		}
		if e.N < 0 {
			t.Fatalf("entry %d: negative occupancy %d", i, e.N)
		}
		prevN, prevTime = e.N, e.Time
	}
}

// AssertRowSums checks every row of m sums to want within tol.
func AssertRowSums(t *testing.T, m mat.Matrix, want, tol float64) {
	t.Helper()
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		var sum float64
		for j := 0; j < c; j++ {
			sum += m.At(i, j)
		}
		if math.Abs(sum-want) > tol {
			t.Errorf("row %d sums to %v, want %v (tol %v)", i, sum, want, tol)
		}
	}
}
