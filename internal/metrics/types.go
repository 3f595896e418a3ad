package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	registry       *prometheus.Registry
	Decoded        *prometheus.CounterVec
	DecodeFailed   *prometheus.CounterVec
	DecodeDuration *prometheus.HistogramVec
	FilesRead      *prometheus.CounterVec
	FilesFailed    prometheus.Counter
}
