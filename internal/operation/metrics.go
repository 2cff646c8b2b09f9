package operation

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noderun_node_requests_total",
			Help: "Total node API requests by status",
		},
		[]string{"node", "resource", "operation", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "noderun_node_request_duration_seconds",
			Help:    "Duration of node API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"node", "operation"},
	)

	itemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noderun_node_items_total",
			Help: "Total input items processed by result",
		},
		[]string{"node", "result"},
	)
)

const (
	itemResultSuccess = "success"
	itemResultError   = "error"
)

// recordRequest records one API exchange. statusCode 0 means no response
// was received.
func recordRequest(node, resource, operation string, statusCode int, duration time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	requestsTotal.WithLabelValues(node, resource, operation, status).Inc()
	requestDuration.WithLabelValues(node, operation).Observe(duration.Seconds())
}

func recordItem(node, result string) {
	itemsTotal.WithLabelValues(node, result).Inc()
}

// WriteMetrics writes every registered metric to path in the Prometheus
// text format, for pickup by a node_exporter textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
