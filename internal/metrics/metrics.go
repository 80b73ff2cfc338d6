package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refengine_jobs_claimed_total",
		Help: "Level-recalc jobs claimed by this process.",
	})

	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refengine_jobs_processed_total",
		Help: "Level-recalc jobs finished, by outcome.",
	}, []string{"outcome"})

	OrphansRescued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refengine_jobs_rescued_total",
		Help: "Jobs reset to PENDING by the orphan rescue sweep.",
	})

	QueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "refengine_queue_depth",
		Help: "Level-recalc queue depth by status.",
	}, []string{"status"})

	PayoutsPaid = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refengine_payouts_paid_total",
		Help: "Ledger payouts written, by kind.",
	}, []string{"kind"})

	RunsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refengine_mining_runs_started_total",
		Help: "Mining runs started.",
	})

	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refengine_mining_runs_completed_total",
		Help: "Mining runs completed.",
	})
)
