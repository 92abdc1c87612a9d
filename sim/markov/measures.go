package markov

import (
	"math"

	"github.com/queueing-sim/queueing-sim/sim"
)

// Measures are long-run performance figures of a model.
type Measures struct {
	Rho           float64 // offered load λ/(kμ)
	Stable        bool    // ρ < 1
	MeanOccupancy float64 // E[N]; +Inf when unstable
	MeanSojourn   float64 // E[T] = E[N]/λ by Little's law; +Inf when unstable
	Utilization   float64 // P(N>0), the fraction of time the system is not empty; 1 when unstable
}

// ExpectedValue returns Σ i·π_i.
func ExpectedValue(pi Distribution) float64 {
	var ev float64
	for i, p := range pi {
		ev += float64(i) * p
	}
	return ev
}

// Analyze derives Measures from a stationary vector. For an unstable model the
// truncated π only reflects the truncation, so the infinite-capacity values
// (+Inf occupancy, full utilization) are reported instead.
func Analyze(cfg sim.ModelConfig, pi Distribution) Measures {
	k := cfg.ServerCount()
	rho := cfg.ArrivalRate / (float64(k) * cfg.ServiceRate)
	m := Measures{Rho: rho, Stable: rho < 1}
	if !m.Stable {
		m.MeanOccupancy = math.Inf(1)
		m.MeanSojourn = math.Inf(1)
		m.Utilization = 1
		return m
	}
	m.MeanOccupancy = ExpectedValue(pi)
	m.MeanSojourn = m.MeanOccupancy / cfg.ArrivalRate
	if len(pi) > 0 {
		m.Utilization = 1 - pi[0]
	}
	return m
}

// ClosedForm returns the textbook infinite-capacity measures: M/M/k through
// the Erlang C formula and M/D/1 through Pollaczek–Khinchine.
func ClosedForm(cfg sim.ModelConfig) (Measures, error) {
	model, err := sim.NewQueueModel(cfg)
	if err != nil {
		return Measures{}, err
	}
	rho := model.Rho()
	m := Measures{Rho: rho, Stable: rho < 1}
	if !m.Stable {
		m.MeanOccupancy = math.Inf(1)
		m.MeanSojourn = math.Inf(1)
		m.Utilization = 1
		return m, nil
	}
	switch model.Service() {
	case sim.ServiceDeterministic:
		m.MeanOccupancy = rho + rho*rho/(2*(1-rho))
		m.Utilization = rho
	default:
		k := model.Servers()
		a := model.ArrivalRate() / model.ServiceRate()
		m.MeanOccupancy = a + ErlangC(k, a)*rho/(1-rho)
		m.Utilization = 1 - EmptyProbability(k, a)
	}
	m.MeanSojourn = m.MeanOccupancy / model.ArrivalRate()
	return m, nil
}

// ErlangC is the probability that an arrival to M/M/k with offered traffic a
// (= λ/μ < k) has to wait.
func ErlangC(k int, a float64) float64 {
	rho := a / float64(k)
	// Σ_{n<k} a^n/n! and a^k/k!, accumulated term by term.
	term, sum := 1.0, 0.0
	for n := 0; n < k; n++ {
		sum += term
		term *= a / float64(n+1)
	}
	tail := term / (1 - rho)
	return tail / (sum + tail)
}

// EmptyProbability is P(N=0) for M/M/k.
func EmptyProbability(k int, a float64) float64 {
	rho := a / float64(k)
	term, sum := 1.0, 0.0
	for n := 0; n < k; n++ {
		sum += term
		term *= a / float64(n+1)
	}
	return 1 / (sum + term/(1-rho))
}
