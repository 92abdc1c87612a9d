package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/markov"
)

// Scenario is the YAML scenario file: one model together with how to simulate
// it and how to solve its chain.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Model    sim.ModelConfig     `yaml:"model"`
	Horizon  sim.HorizonConfig   `yaml:"horizon"`
	Runs     int                 `yaml:"runs"`
	Seed     int64               `yaml:"seed"`
	Capacity int                 `yaml:"capacity"` // chain truncation
	Solver   markov.SolverConfig `yaml:"solver"`
}

// DefaultScenario is M/M/1 with λ=1, μ=2, 30 runs of at most 1000 events and
// a 100-state chain.
func DefaultScenario() Scenario {
	return Scenario{
		Model:    sim.ModelConfig{ArrivalRate: 1, ServiceRate: 2, Service: sim.ServiceExponential, Servers: 1},
		Horizon:  sim.DefaultHorizon,
		Runs:     30,
		Seed:     42,
		Capacity: 100,
		Solver:   markov.DefaultSolverConfig,
	}
}

// LoadScenario reads a scenario file. Fields the file leaves out keep their
// DefaultScenario values; unknown fields are an error.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (Scenario, error) {
	sc := DefaultScenario()
	// Parse YAML with strict field checking: typos must cause errors
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	kind, err := sim.ParseServiceKind(string(sc.Model.ServiceKind()))
	if err != nil {
		return Scenario{}, err
	}
	sc.Model.Service = kind
	return sc, nil
}

// Batch returns the simulation part of the scenario.
func (s Scenario) Batch() sim.BatchConfig {
	return sim.BatchConfig{Model: s.Model, Horizon: s.Horizon, Runs: s.Runs, Seed: s.Seed}
}

// Chain returns the analytical part of the scenario.
func (s Scenario) Chain() markov.ChainConfig {
	return markov.ChainConfig{Model: s.Model, Capacity: s.Capacity}
}
