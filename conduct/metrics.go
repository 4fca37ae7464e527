package conduct

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK     = "ok"
	resultFailed = "failed"
)

//nolint:gochecknoglobals
var (
	workersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conduct_workers_registered_total",
		Help: "Workers registered with a conductor.",
	})

	beatsAdvanced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conduct_beats_advanced_total",
		Help: "Clock beats advanced by conductor monitors.",
	})

	deadlocksSuspected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conduct_deadlocks_suspected_total",
		Help: "Conducted runs killed on suspicion of deadlock.",
	})

	timeoutsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conduct_timeouts_total",
		Help: "Conducted runs killed after exceeding their timeout.",
	})

	conductsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduct_runs_finished_total",
		Help: "Conducted runs finished, by result.",
	}, []string{"result"})
)
