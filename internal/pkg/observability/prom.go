package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "siegebackend"
)

var (
	SheetLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "sheet", "load_duration_seconds"),
		Help:    "Duration of loading a battle log sheet from its source in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"source", "cached"})
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "query", "duration_seconds"),
		Help:    "Duration of offense deck queries in seconds, including sheet loading",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"query"})
	QueryPlaceholders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "query", "placeholders_total"),
		Help: "Number of grid queries answered with a diagnostic placeholder row",
	}, []string{"reason"})
	IngestConsumeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "ingest", "consume_duration_seconds"),
		Help:    "Duration of siege log batch consumption in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
	IngestConsumeMessagingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "ingest", "consume_messaging_latency_seconds"),
		Help:    "Messaging latency of siege log batch consumption in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
	IngestedLogs = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "ingest", "logs_total"),
		Help: "Number of siege logs persisted by the ingest worker",
	})
)
