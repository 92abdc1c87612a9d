package sim

import (
	"fmt"
	"strings"
)

// ServiceKind selects the service-time mechanism of a model.
type ServiceKind string

const (
	// ServiceExponential is memoryless service ('M').
	ServiceExponential ServiceKind = "M"
	// ServiceDeterministic is constant service of length 1/μ ('D').
	ServiceDeterministic ServiceKind = "D"
)

// ParseServiceKind accepts "M"/"D" in either case.
func ParseServiceKind(s string) (ServiceKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return ServiceExponential, nil
	case "D":
		return ServiceDeterministic, nil
	default:
		return "", fmt.Errorf("%w: unknown service kind %q (want M or D)", ErrInvalidModel, s)
	}
}

// ModelConfig groups the queueing model parameters.
type ModelConfig struct {
	ArrivalRate float64     `yaml:"arrival_rate"` // λ, must be > 0
	ServiceRate float64     `yaml:"service_rate"` // μ per server, must be > 0
	Service     ServiceKind `yaml:"service"`      // "M" (default) or "D"
	Servers     int         `yaml:"servers"`      // k; 0 means 1
}

// ServerCount returns k, treating the zero value as a single server.
func (c ModelConfig) ServerCount() int {
	if c.Servers == 0 {
		return 1
	}
	return c.Servers
}

// ServiceKind returns the configured kind, defaulting to exponential service.
func (c ModelConfig) ServiceKind() ServiceKind {
	if c.Service == "" {
		return ServiceExponential
	}
	return c.Service
}

// HorizonConfig bounds a single run. A run stops before the next step once
// either bound is reached.
type HorizonConfig struct {
	MaxTime   float64 `yaml:"max_time"`   // simulation-time bound
	MaxEvents int64   `yaml:"max_events"` // processed-event bound
}

// DefaultHorizon matches the defaults of the reference experiments.
var DefaultHorizon = HorizonConfig{MaxTime: 1000, MaxEvents: 1000}

// Validate rejects non-positive bounds.
func (h HorizonConfig) Validate() error {
	if h.MaxTime <= 0 {
		return fmt.Errorf("max_time must be > 0, got %v", h.MaxTime)
	}
	if h.MaxEvents <= 0 {
		return fmt.Errorf("max_events must be > 0, got %d", h.MaxEvents)
	}
	return nil
}

// BatchConfig groups everything needed for a SimulationBatch.
type BatchConfig struct {
	Model   ModelConfig   `yaml:"model"`
	Horizon HorizonConfig `yaml:"horizon"`
	Runs    int           `yaml:"runs"` // number of independent replications, must be > 0
	Seed    int64         `yaml:"seed"`
}

// Validate checks the batch configuration. Model errors wrap ErrInvalidModel.
func (c BatchConfig) Validate() error {
	if _, err := NewQueueModel(c.Model); err != nil {
		return err
	}
	if err := c.Horizon.Validate(); err != nil {
		return err
	}
	if c.Runs <= 0 {
		return fmt.Errorf("runs must be > 0, got %d", c.Runs)
	}
	return nil
}
