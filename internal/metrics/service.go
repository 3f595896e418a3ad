package metrics

import (
	"fmt"
	"net/http"

	"github.com/mauv0809/qwstats/ktxstats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewService creates the decode metrics on a private registry so several
// services can coexist in one process.
func NewService() *Service {
	s := &Service{
		registry: prometheus.NewRegistry(),
		Decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ktxstats_documents_decoded_total",
			Help: "The total number of stats documents decoded successfully.",
		}, []string{"revision"}),
		DecodeFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ktxstats_documents_failed_total",
			Help: "The total number of stats documents that failed to decode.",
		}, []string{"revision", "kind"}),
		DecodeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ktxstats_decode_duration_seconds",
			Help:    "The duration of individual document decodes.",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"revision"}),
		FilesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ktxstats_files_read_total",
			Help: "The total number of stats files read, by compression.",
		}, []string{"compression"}),
		FilesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ktxstats_files_failed_total",
			Help: "The total number of stats files that could not be read or decoded.",
		}),
	}

	s.registry.MustRegister(
		s.Decoded,
		s.DecodeFailed,
		s.DecodeDuration,
		s.FilesRead,
		s.FilesFailed,
	)

	return s
}

// Gatherer exposes the service registry.
func (s *Service) Gatherer() prometheus.Gatherer {
	return s.registry
}

// Handler returns an http.Handler serving the service registry.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.Gatherer(), promhttp.HandlerOpts{})
}

// WriteTextfile writes the current metrics in the text exposition format to
// path, for the node exporter textfile collector.
func (s *Service) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, s.Gatherer()); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func (s *Service) IncDecoded(rev ktxstats.Revision) {
	s.Decoded.WithLabelValues(string(rev)).Inc()
}

func (s *Service) IncDecodeFailed(rev ktxstats.Revision, kind string) {
	s.DecodeFailed.WithLabelValues(string(rev), kind).Inc()
}

func (s *Service) ObserveDecodeDuration(rev ktxstats.Revision, seconds float64) {
	s.DecodeDuration.WithLabelValues(string(rev)).Observe(seconds)
}

func (s *Service) IncFilesRead(compression string) {
	s.FilesRead.WithLabelValues(compression).Inc()
}

func (s *Service) IncFilesFailed() {
	s.FilesFailed.Inc()
}
