package eventually

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// retryAttempts counts the total number of retry attempts made.
	retryAttempts = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "eventually_attempts",
		Help: "The total number of retry attempts evaluated",
	})

	// retryTimeouts counts the retries that ran out of time.
	retryTimeouts = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "eventually_timeouts",
		Help: "The total number of retry loops that timed out",
	})

	// retryElapsed measures how long successful retries took end to end.
	retryElapsed = promauto.NewHistogram(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name: "eventually_elapsed_seconds",
		Help: "The time spent until a retried operation succeeded",
		Buckets: []float64{
			0.001, // 1ms
			0.01,  // 10ms
			0.1,   // 100ms
			1,     // 1s
			10,    // 10s
			60,    // 1m
		},
	})
)
