package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestSimulator builds run 0 of cfg with the streams RunBatch would give
// it for seed.
func newTestSimulator(t *testing.T, cfg ModelConfig, horizon HorizonConfig, seed int64) *Simulator {
	t.Helper()
	model, err := NewQueueModel(cfg)
	require.NoError(t, err)
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	return NewSimulator(model, horizon,
		NewVariateSource(rng.ForSubsystem(SubsystemArrivals(0))),
		NewVariateSource(rng.ForSubsystem(SubsystemService(0))))
}

// stepN advances s by n events, failing the test if it terminates early.
func stepN(t *testing.T, s *Simulator, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.False(t, s.done(), "run reached a bound after %d of %d steps", i, n)
		s.Step()
	}
}
