package cmd

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/markov"
)

// execute runs a fresh command tree so flag state does not leak between tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSimulate_Defaults(t *testing.T) {
	out, err := execute(t, "simulate", "--runs", "3", "--max-events", "200")
	require.NoError(t, err)

	assert.Contains(t, out, "=== M/M/1: λ=1 μ=2 k=1 ρ=0.5000 ===")
	assert.Contains(t, out, "runs:            3")
	assert.Contains(t, out, "mean occupancy:")
	assert.Contains(t, out, "busy periods:")
	assert.NotContains(t, out, "Occupancy distribution")
}

func TestSimulate_PDF(t *testing.T) {
	out, err := execute(t, "simulate", "--runs", "4", "--max-events", "300", "--pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "Occupancy distribution:")
	assert.Contains(t, out, "P(N=0) = ")
}

func TestSimulate_SameSeedSameOutput(t *testing.T) {
	args := []string{"simulate", "--runs", "5", "--max-events", "500", "--seed", "11"}
	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulate_InvalidServiceFlag(t *testing.T) {
	_, err := execute(t, "simulate", "--service", "G")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown service kind")
}

func TestSimulate_DeterministicMultiServerRejected(t *testing.T) {
	_, err := execute(t, "simulate", "--service", "D", "--servers", "2")
	assert.True(t, errors.Is(err, sim.ErrInvalidModel), "got %v", err)
}

func TestSolve_FromConfig(t *testing.T) {
	out, err := execute(t, "solve", "--config", "testdata/mm2.yaml", "--states", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "=== M/M/2:")
	assert.Contains(t, out, "Markov chain: CTMC, 100 states")
	assert.Contains(t, out, "solver:          exp(Q·T), T=1000")
	assert.Contains(t, out, "utilization:     0.6667 (closed form 0.6667)")
	assert.Contains(t, out, "mean occupancy:  1.3333 (closed form 1.3333)")
	assert.Contains(t, out, "π[2] = ")
	assert.NotContains(t, out, "π[3] = ")
}

func TestSolve_ChangedFlagsOverrideConfig(t *testing.T) {
	// GIVEN an M/M/2 scenario file
	// WHEN --servers and --arrival-rate are set explicitly
	out, err := execute(t, "solve", "--config", "testdata/mm2.yaml", "--servers", "1", "--arrival-rate", "0.5")
	require.NoError(t, err)

	// THEN the flags win and the untouched service rate comes from the file
	assert.Contains(t, out, "=== M/M/1: λ=0.5 μ=1 k=1 ρ=0.5000 ===")
}

func TestSolve_DeterministicService(t *testing.T) {
	out, err := execute(t, "solve", "--config", "testdata/md1.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "=== M/D/1:")
	assert.Contains(t, out, "Markov chain: DTMC, 40 states")
	assert.Contains(t, out, "solver:          P^n, n=16384")
	assert.Contains(t, out, "(closed form 0.7500)")
}

func TestSolve_SolverFlagsReachSolver(t *testing.T) {
	out, err := execute(t, "solve", "--solver-horizon", "2000")
	require.NoError(t, err)
	assert.Contains(t, out, "T=2000")
}

func TestSolve_NotConverged(t *testing.T) {
	_, err := execute(t, "solve", "--solver-horizon", "0.01")
	assert.True(t, errors.Is(err, markov.ErrNotConverged), "got %v", err)
}

func TestSolve_CapacityTooSmall(t *testing.T) {
	_, err := execute(t, "solve", "--capacity", "1")
	assert.True(t, errors.Is(err, markov.ErrInvalidChain), "got %v", err)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "--runs", "4", "--max-events", "400", "--capacity", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "closed form")
	assert.Contains(t, out, "mean occupancy")
	assert.Contains(t, out, "utilization")
	assert.Contains(t, out, "mean sojourn")
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, err := execute(t, "simulate", "--log", "loud")
	assert.Error(t, err)
}

func TestRoot_ConfigTypo(t *testing.T) {
	_, err := execute(t, "simulate", "--config", "testdata/typo.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "servce_rate")
}
