package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_total",
			Help: "Transactions created, by type",
		},
		[]string{"type"}, // income|expense|transfer_in|transfer_out
	)

	BalanceUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_updates_total",
			Help: "Actual balance updates recorded",
		},
	)

	RecurringMaterializedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recurring_materialized_total",
			Help: "Transactions spawned from recurring definitions",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TransactionsTotal)
	prometheus.MustRegister(BalanceUpdatesTotal)
	prometheus.MustRegister(RecurringMaterializedTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
