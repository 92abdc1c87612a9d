package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidModel is returned for unsupported service kinds, server counts or rates.
var ErrInvalidModel = errors.New("invalid queue model")

// QueueModel decides, given the occupancy right after a transition, whether a
// new service completion must be scheduled. The set of implementations is
// closed: SingleServerExponential, SingleServerDeterministic, MultiServerExponential.
type QueueModel interface {
	// ShouldScheduleOnArrival reports whether the customer that just made the
	// occupancy n finds a free server.
	ShouldScheduleOnArrival(n int) bool
	// ShouldScheduleOnDeparture reports whether a waiting customer takes the
	// server freed by the departure that left occupancy n.
	ShouldScheduleOnDeparture(n int) bool
	// DrawServiceDuration returns the length of one service.
	DrawServiceDuration(src *VariateSource) float64

	ArrivalRate() float64
	ServiceRate() float64
	Servers() int
	Service() ServiceKind
	// Rho is the offered load λ/(kμ).
	Rho() float64
}

type rates struct {
	lambda float64
	mu     float64
}

func (r rates) ArrivalRate() float64 { return r.lambda }
func (r rates) ServiceRate() float64 { return r.mu }

// SingleServerExponential is the M/M/1 queue.
type SingleServerExponential struct{ rates }

func (SingleServerExponential) ShouldScheduleOnArrival(n int) bool   { return n == 1 }
func (SingleServerExponential) ShouldScheduleOnDeparture(n int) bool { return n > 0 }
func (m SingleServerExponential) DrawServiceDuration(src *VariateSource) float64 {
	return src.Exponential(m.mu)
}
func (SingleServerExponential) Servers() int         { return 1 }
func (SingleServerExponential) Service() ServiceKind { return ServiceExponential }
func (m SingleServerExponential) Rho() float64       { return m.lambda / m.mu }

// SingleServerDeterministic is the M/D/1 queue: every service lasts exactly 1/μ.
type SingleServerDeterministic struct{ rates }

func (SingleServerDeterministic) ShouldScheduleOnArrival(n int) bool   { return n == 1 }
func (SingleServerDeterministic) ShouldScheduleOnDeparture(n int) bool { return n > 0 }
func (m SingleServerDeterministic) DrawServiceDuration(src *VariateSource) float64 {
	return src.Deterministic(m.mu)
}
func (SingleServerDeterministic) Servers() int         { return 1 }
func (SingleServerDeterministic) Service() ServiceKind { return ServiceDeterministic }
func (m SingleServerDeterministic) Rho() float64       { return m.lambda / m.mu }

// MultiServerExponential is the M/M/k queue. With k=1 it behaves exactly like
// SingleServerExponential.
type MultiServerExponential struct {
	rates
	k int
}

// ShouldScheduleOnArrival: a server is free while n <= k.
func (m MultiServerExponential) ShouldScheduleOnArrival(n int) bool { return n <= m.k }

// ShouldScheduleOnDeparture: someone is still waiting while n >= k.
func (m MultiServerExponential) ShouldScheduleOnDeparture(n int) bool { return n >= m.k }
func (m MultiServerExponential) DrawServiceDuration(src *VariateSource) float64 {
	return src.Exponential(m.mu)
}
func (m MultiServerExponential) Servers() int       { return m.k }
func (MultiServerExponential) Service() ServiceKind { return ServiceExponential }
func (m MultiServerExponential) Rho() float64       { return m.lambda / (float64(m.k) * m.mu) }

// NewQueueModel picks the variant for cfg. Deterministic service is only
// supported with a single server.
func NewQueueModel(cfg ModelConfig) (QueueModel, error) {
	if !(cfg.ArrivalRate > 0) {
		return nil, fmt.Errorf("%w: arrival rate must be > 0, got %v", ErrInvalidModel, cfg.ArrivalRate)
	}
	if !(cfg.ServiceRate > 0) {
		return nil, fmt.Errorf("%w: service rate must be > 0, got %v", ErrInvalidModel, cfg.ServiceRate)
	}
	k := cfg.ServerCount()
	if k < 1 {
		return nil, fmt.Errorf("%w: server count must be >= 1, got %d", ErrInvalidModel, cfg.Servers)
	}
	r := rates{lambda: cfg.ArrivalRate, mu: cfg.ServiceRate}
	switch cfg.ServiceKind() {
	case ServiceExponential:
		if k == 1 {
			return SingleServerExponential{r}, nil
		}
		return MultiServerExponential{rates: r, k: k}, nil
	case ServiceDeterministic:
		if k != 1 {
			return nil, fmt.Errorf("%w: deterministic service supports one server, got %d", ErrInvalidModel, k)
		}
		return SingleServerDeterministic{r}, nil
	default:
		return nil, fmt.Errorf("%w: unknown service kind %q", ErrInvalidModel, cfg.Service)
	}
}

// Kendall returns the model's notation, e.g. "M/M/1" or "M/D/1".
func Kendall(m QueueModel) string {
	return fmt.Sprintf("M/%s/%d", m.Service(), m.Servers())
}
