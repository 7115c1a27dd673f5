package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the product recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_products_latency_seconds",
		Help:    "Latency of the product recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation pages served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_products_requests_total",
		Help: "Total number of product recommendation requests",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
	)
}
