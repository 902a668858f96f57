package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weighbridge_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "weighbridge_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	SettlementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weighbridge_settlements_total",
		Help: "Exits settled into transactions",
	})

	ReversalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weighbridge_reversals_total",
		Help: "Transactions deleted and reversed",
	})
)
