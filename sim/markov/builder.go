// Package markov builds finite Markov chains approximating the queueing models
// of package sim and extracts their stationary distributions.
//
// Exponential service yields a continuous-time birth–death generator; M/D/1
// yields the discrete-time chain embedded at departure instants. Both are
// truncated to states 0..capacity-1.
package markov

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/queueing-sim/queueing-sim/sim"
)

// ErrInvalidChain is returned when the truncation capacity cannot hold a chain.
var ErrInvalidChain = errors.New("invalid markov chain request")

// MinCapacity is the smallest truncation with both a birth and a death state.
const MinCapacity = 2

// Kind distinguishes generator matrices from transition matrices.
type Kind string

const (
	CTMC Kind = "CTMC" // rows sum to 0
	DTMC Kind = "DTMC" // rows sum to 1
)

// ChainConfig parameterizes Build.
type ChainConfig struct {
	Model    sim.ModelConfig `yaml:"model"`
	Capacity int             `yaml:"capacity"` // number of states, >= MinCapacity
}

// Chain is a built matrix together with how it should be solved.
// Matrix is never mutated after Build returns.
type Chain struct {
	Kind     Kind
	Matrix   *mat.Dense
	Capacity int
	Model    sim.ModelConfig
}

// Build returns the CTMC generator for exponential service and the DTMC
// transition matrix for deterministic service. Identical inputs give
// bit-identical matrices.
func Build(cfg ChainConfig) (*Chain, error) {
	model, err := sim.NewQueueModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.Capacity < MinCapacity {
		return nil, fmt.Errorf("%w: capacity must be >= %d, got %d", ErrInvalidChain, MinCapacity, cfg.Capacity)
	}

	c := &Chain{Capacity: cfg.Capacity, Model: cfg.Model}
	switch model.Service() {
	case sim.ServiceDeterministic:
		c.Kind = DTMC
		c.Matrix = BuildTransition(model.ArrivalRate(), model.ServiceRate(), cfg.Capacity)
	default:
		c.Kind = CTMC
		c.Matrix = BuildGenerator(model.ArrivalRate(), model.ServiceRate(), model.Servers(), cfg.Capacity)
	}
	return c, nil
}

// BuildGenerator returns the truncated birth–death generator of M/M/k:
// Q[i][i+1] = λ, Q[i][i-1] = min(i,k)·μ, Q[i][i] = -(row sum).
// State 0 has no death and state capacity-1 has no birth.
func BuildGenerator(lambda, mu float64, servers, capacity int) *mat.Dense {
	if capacity < MinCapacity {
		panic(fmt.Sprintf("BuildGenerator: capacity %d < %d", capacity, MinCapacity))
	}
	q := mat.NewDense(capacity, capacity, nil)
	for i := 0; i < capacity; i++ {
		var out float64
		if i+1 < capacity {
			q.Set(i, i+1, lambda)
			out += lambda
		}
		if i > 0 {
			death := float64(min(i, servers)) * mu
			q.Set(i, i-1, death)
			out += death
		}
		q.Set(i, i, -out)
	}
	return q
}

// BuildTransition returns the M/D/1 chain embedded at departures. The number
// of arrivals during one service is Poisson(ρ), ρ = λ/μ, so row i moves to
// j >= max(0,i-1) with probability Poisson.pmf(j-max(0,i-1)). The last column
// takes the remaining mass, making every row sum to 1.
func BuildTransition(lambda, mu float64, capacity int) *mat.Dense {
	if capacity < MinCapacity {
		panic(fmt.Sprintf("BuildTransition: capacity %d < %d", capacity, MinCapacity))
	}
	arrivals := distuv.Poisson{Lambda: lambda / mu}
	p := mat.NewDense(capacity, capacity, nil)
	for i := 0; i < capacity; i++ {
		base := max(0, i-1)
		var acc float64
		for j := base; j < capacity-1; j++ {
			pr := arrivals.Prob(float64(j - base))
			p.Set(i, j, pr)
			acc += pr
		}
		p.Set(i, capacity-1, max(0, 1-acc))
	}
	return p
}
