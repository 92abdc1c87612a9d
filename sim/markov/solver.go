package markov

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNotConverged means the saturated matrix still had distinguishable rows,
// so no stationary distribution is reported. Callers may retry with a larger
// horizon or power.
var ErrNotConverged = errors.New("no stationary distribution found")

// SolverConfig controls the saturation procedures. The tolerances follow the
// element-wise closeness test |a-b| <= AbsTol + RelTol·|b|.
type SolverConfig struct {
	Horizon float64 `yaml:"horizon"` // T in exp(Q·T)
	Power   int     `yaml:"power"`   // n in P^n
	RelTol  float64 `yaml:"rel_tol"`
	AbsTol  float64 `yaml:"abs_tol"`
}

// DefaultSolverConfig saturates the generator over T=1000 and raises
// transition matrices to 2^14.
var DefaultSolverConfig = SolverConfig{
	Horizon: 1000,
	Power:   1 << 14,
	RelTol:  1e-5,
	AbsTol:  1e-8,
}

// Validate rejects non-positive horizon/power and negative tolerances.
func (c SolverConfig) Validate() error {
	if !(c.Horizon > 0) {
		return fmt.Errorf("solver horizon must be > 0, got %v", c.Horizon)
	}
	if c.Power < 1 {
		return fmt.Errorf("solver power must be >= 1, got %d", c.Power)
	}
	if c.RelTol < 0 || c.AbsTol < 0 {
		return fmt.Errorf("solver tolerances must be >= 0, got rel=%v abs=%v", c.RelTol, c.AbsTol)
	}
	return nil
}

// Distribution is a stationary probability vector indexed by occupancy.
type Distribution []float64

// Solver extracts stationary distributions. It never mutates its inputs and
// is safe for concurrent use.
type Solver struct {
	cfg SolverConfig
}

// NewSolver validates cfg.
func NewSolver(cfg SolverConfig) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{cfg: cfg}, nil
}

// Config returns the solver configuration.
func (s *Solver) Config() SolverConfig {
	return s.cfg
}

// Solve dispatches on the chain kind.
func (s *Solver) Solve(c *Chain) (Distribution, error) {
	if c == nil || c.Matrix == nil {
		panic("Solver.Solve: chain must not be nil")
	}
	switch c.Kind {
	case CTMC:
		return s.SolveCTMC(c.Matrix)
	case DTMC:
		return s.SolveDTMC(c.Matrix)
	default:
		return nil, fmt.Errorf("%w: unknown chain kind %q", ErrInvalidChain, c.Kind)
	}
}

// SolveCTMC approximates π by exp(Q·T). Every row of the result is the law of
// the chain at time T from a different start; π is reported only if they agree.
func (s *Solver) SolveCTMC(q mat.Matrix) (Distribution, error) {
	var scaled, saturated mat.Dense
	scaled.Scale(s.cfg.Horizon, q)
	saturated.Exp(&scaled)
	return s.fromSaturated(&saturated, "CTMC")
}

// SolveDTMC approximates π by P^n computed with repeated squaring.
func (s *Solver) SolveDTMC(p mat.Matrix) (Distribution, error) {
	var saturated mat.Dense
	saturated.Pow(p, s.cfg.Power)
	return s.fromSaturated(&saturated, "DTMC")
}

func (s *Solver) fromSaturated(m *mat.Dense, kind string) (Distribution, error) {
	if !rowsConverged(m, s.cfg.RelTol, s.cfg.AbsTol) {
		logrus.Warnf("%s solve: rows did not converge (horizon=%v power=%d)", kind, s.cfg.Horizon, s.cfg.Power)
		return nil, ErrNotConverged
	}
	pi := Distribution(mat.Row(nil, 0, m))
	for i, v := range pi {
		if v < 0 {
			pi[i] = 0
		}
	}
	total := floats.Sum(pi)
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, ErrNotConverged
	}
	floats.Scale(1/total, pi)
	return pi, nil
}

// rowsConverged reports whether every row is element-wise close to row 0.
func rowsConverged(m *mat.Dense, rtol, atol float64) bool {
	r, c := m.Dims()
	first := m.RawRowView(0)
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		for j := 0; j < c; j++ {
			a, b := row[j], first[j]
			if math.IsNaN(a) || math.Abs(a-b) > atol+rtol*math.Abs(b) {
				return false
			}
		}
	}
	return true
}

// Residual returns max_j |(πM)_j - target_j|, where target is 0 for a
// generator and π for a transition matrix.
func Residual(c *Chain, pi Distribution) float64 {
	v := mat.NewVecDense(len(pi), append([]float64(nil), pi...))
	var prod mat.VecDense
	prod.MulVec(c.Matrix.T(), v)
	var worst float64
	for j := 0; j < prod.Len(); j++ {
		want := 0.0
		if c.Kind == DTMC {
			want = pi[j]
		}
		worst = math.Max(worst, math.Abs(prod.AtVec(j)-want))
	}
	return worst
}
