package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	StoreRequests        prometheus.Counter
	StoreErrors          prometheus.Counter
	StoreRequestDuration prometheus.Histogram
	UploadsFailed        prometheus.Counter
	NotifSent            prometheus.Counter
	NotifFailed          prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		StoreRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boldklub_store_requests_total",
			Help: "The total number of requests issued to the content store.",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boldklub_store_errors_total",
			Help: "The total number of content store requests that failed.",
		}),
		StoreRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boldklub_store_request_duration_seconds",
			Help:    "The duration of individual content store requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		UploadsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boldklub_uploads_failed_total",
			Help: "The total number of media uploads that failed after the owning record was persisted.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boldklub_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boldklub_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boldklub_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.StoreRequests,
		s.StoreErrors,
		s.StoreRequestDuration,
		s.UploadsFailed,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncStoreRequests() {
	s.StoreRequests.Inc()
}

func (s *Service) IncStoreErrors() {
	s.StoreErrors.Inc()
}

func (s *Service) ObserveStoreRequestDuration(duration float64) {
	s.StoreRequestDuration.Observe(duration)
}

func (s *Service) IncUploadsFailed() {
	s.UploadsFailed.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
