package fetcher

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "nowplaying"

type Metrics struct {
	fetchesTotal     *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	endpointFailures *prometheus.CounterVec
	recordsTotal     *prometheus.CounterVec
	recordsDropped   *prometheus.CounterVec
}

// NewMetrics creates the fetcher metrics and registers them with reg when
// it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fetches_total",
			Help:      "Number of schema fetches.",
		}, []string{"schema"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time taken to fetch all endpoints of a schema and assemble records.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"schema"}),
		endpointFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "endpoint_failures_total",
			Help:      "Number of endpoint requests that failed and were replaced by an empty body.",
		}, []string{"schema", "endpoint"}),
		recordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_total",
			Help:      "Number of records assembled.",
		}, []string{"schema"}),
		recordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_dropped_total",
			Help:      "Number of track elements dropped because they could not be assembled.",
		}, []string{"schema"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.fetchesTotal,
			m.fetchDuration,
			m.endpointFailures,
			m.recordsTotal,
			m.recordsDropped,
		)
	}

	return m
}
