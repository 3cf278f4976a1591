package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "userpravah_parse_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "userpravah_analysis_seconds",
		Help:    "Time spent on each analysis stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	RoutesDiscovered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "userpravah_routes_total",
		Help: "Routes in the canonical table after the last run.",
	})

	FlowsDiscovered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "userpravah_flows_total",
		Help: "Navigation flows discovered in the last run.",
	})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "userpravah_graph_nodes_total",
		Help: "Nodes in the assembled navigation graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "userpravah_graph_edges_total",
		Help: "Edges in the assembled navigation graph.",
	})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "userpravah_runs_total",
		Help: "Completed analysis runs by framework.",
	}, []string{"framework"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "userpravah_watcher_events_total",
		Help: "File system events received by the watcher.",
	})
)
