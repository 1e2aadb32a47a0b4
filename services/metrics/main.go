package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesTotal counts settled federated queries by kind and outcome
	// (success, error).
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedvlm_queries_total",
			Help: "Total number of federated queries by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	NodeFaultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedvlm_node_faults_total",
			Help: "Total number of node entries dropped while parsing or aggregating",
		},
		[]string{"kind"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedvlm_cache_lookups_total",
			Help: "Query cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fedvlm_active_sessions",
			Help: "Number of live render sessions",
		},
	)
)
