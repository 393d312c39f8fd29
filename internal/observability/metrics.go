package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchbridge_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// PitchesCreated counts pitch creations by category.
	PitchesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchbridge_pitches_created_total",
		Help: "Total number of pitches created by category",
	}, []string{"category"})

	// InterestToggles counts interest toggle operations by resulting state.
	InterestToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchbridge_interest_toggles_total",
		Help: "Total number of interest toggles by resulting state",
	}, []string{"state"})

	// AuthAttempts counts authentication attempts by operation and outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchbridge_auth_attempts_total",
		Help: "Total number of auth attempts by operation and outcome",
	}, []string{"operation", "outcome"})
)
