package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncStoreRequests()
	IncStoreErrors()
	ObserveStoreRequestDuration(duration float64)
	IncUploadsFailed()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}
