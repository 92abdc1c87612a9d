package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueueModel_SelectsVariant(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ModelConfig
		want    QueueModel
		kendall string
	}{
		{"default kind is M/M/1", ModelConfig{ArrivalRate: 1, ServiceRate: 2}, SingleServerExponential{}, "M/M/1"},
		{"D with one server", ModelConfig{ArrivalRate: 1, ServiceRate: 2, Service: ServiceDeterministic}, SingleServerDeterministic{}, "M/D/1"},
		{"M with k=3", ModelConfig{ArrivalRate: 1, ServiceRate: 2, Servers: 3}, MultiServerExponential{}, "M/M/3"},
		{"explicit k=1 stays single", ModelConfig{ArrivalRate: 1, ServiceRate: 2, Servers: 1, Service: ServiceExponential}, SingleServerExponential{}, "M/M/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewQueueModel(tt.cfg)
			require.NoError(t, err)
			assert.IsType(t, tt.want, m)
			assert.Equal(t, tt.kendall, Kendall(m))
		})
	}
}

func TestNewQueueModel_Invalid_ReturnsErrInvalidModel(t *testing.T) {
	tests := []struct {
		name string
		cfg  ModelConfig
	}{
		{"unknown kind", ModelConfig{ArrivalRate: 1, ServiceRate: 1, Service: "G"}},
		{"deterministic multi-server", ModelConfig{ArrivalRate: 1, ServiceRate: 1, Service: ServiceDeterministic, Servers: 2}},
		{"negative servers", ModelConfig{ArrivalRate: 1, ServiceRate: 1, Servers: -1}},
		{"zero arrival rate", ModelConfig{ArrivalRate: 0, ServiceRate: 1}},
		{"negative service rate", ModelConfig{ArrivalRate: 1, ServiceRate: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQueueModel(tt.cfg)
			assert.True(t, errors.Is(err, ErrInvalidModel), "got %v", err)
		})
	}
}

func TestQueueModel_Rho(t *testing.T) {
	m, err := NewQueueModel(ModelConfig{ArrivalRate: 1, ServiceRate: 1, Servers: 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, m.Rho(), 1e-15)

	m, err = NewQueueModel(ModelConfig{ArrivalRate: 3, ServiceRate: 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, m.Rho(), 1e-15)
}

// TestQueueModel_SchedulingRules checks the single-server rules and that
// M/M/k with k=1 agrees with them.
func TestQueueModel_SchedulingRules(t *testing.T) {
	single, _ := NewQueueModel(ModelConfig{ArrivalRate: 1, ServiceRate: 1})
	det, _ := NewQueueModel(ModelConfig{ArrivalRate: 1, ServiceRate: 1, Service: ServiceDeterministic})
	multi1 := MultiServerExponential{rates: rates{1, 1}, k: 1}

	for n := 0; n <= 5; n++ {
		for _, m := range []QueueModel{det, multi1} {
			assert.Equal(t, single.ShouldScheduleOnArrival(n), m.ShouldScheduleOnArrival(n), "arrival n=%d %T", n, m)
			assert.Equal(t, single.ShouldScheduleOnDeparture(n), m.ShouldScheduleOnDeparture(n), "departure n=%d %T", n, m)
		}
	}

	multi3 := MultiServerExponential{rates: rates{1, 1}, k: 3}
	assert.True(t, multi3.ShouldScheduleOnArrival(3), "third customer finds the third server")
	assert.False(t, multi3.ShouldScheduleOnArrival(4), "fourth customer waits")
	assert.True(t, multi3.ShouldScheduleOnDeparture(3), "a waiting customer is admitted")
	assert.False(t, multi3.ShouldScheduleOnDeparture(2), "nobody waits with two left")
}

func TestParseServiceKind(t *testing.T) {
	k, err := ParseServiceKind("d")
	require.NoError(t, err)
	assert.Equal(t, ServiceDeterministic, k)

	k, err = ParseServiceKind(" M ")
	require.NoError(t, err)
	assert.Equal(t, ServiceExponential, k)

	_, err = ParseServiceKind("x")
	assert.ErrorIs(t, err, ErrInvalidModel)
}
