package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible batch of runs.
// Two batches with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical traces.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem names ===

// SubsystemArrivals returns the subsystem name for the arrival stream of run i.
func SubsystemArrivals(run int) string {
	return fmt.Sprintf("run_%d/arrivals", run)
}

// SubsystemService returns the subsystem name for the service stream of run i.
// Keeping it apart from the arrival stream means an M and a D batch with the
// same key see identical arrival instants.
func SubsystemService(run int) string {
	return fmt.Sprintf("run_%d/service", run)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation: each subsystem is a PCG stream seeded with
// (masterSeed, fnv1a64(subsystemName)).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewPCG(uint64(p.key), fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// === VariateSource ===

// VariateSource draws interarrival and service durations from one random stream.
// Rates must be > 0; models validate them on construction.
type VariateSource struct {
	rng *rand.Rand
}

// NewVariateSource wraps rng. Panics on nil.
func NewVariateSource(rng *rand.Rand) *VariateSource {
	if rng == nil {
		panic("NewVariateSource: rng must not be nil")
	}
	return &VariateSource{rng: rng}
}

// Exponential draws an Exp(rate) duration, mean 1/rate.
func (v *VariateSource) Exponential(rate float64) float64 {
	return distuv.Exponential{Rate: rate, Src: v.rng}.Rand()
}

// Deterministic returns the constant duration 1/rate.
func (v *VariateSource) Deterministic(rate float64) float64 {
	return 1 / rate
}
