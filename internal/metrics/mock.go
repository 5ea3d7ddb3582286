package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	storeRequests  int
	storeErrors    int
	storeDurations []float64
	uploadsFailed  int
	notifSent      int
	notifFailed    int
	startupTime    float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		storeDurations: make([]float64, 0),
	}
}

func (m *Mock) IncStoreRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeRequests++
}

func (m *Mock) IncStoreErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeErrors++
}

func (m *Mock) ObserveStoreRequestDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeDurations = append(m.storeDurations, duration)
}

func (m *Mock) IncUploadsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadsFailed++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// StoreRequests returns the number of times IncStoreRequests was called.
func (m *Mock) StoreRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeRequests
}

// StoreErrors returns the number of times IncStoreErrors was called.
func (m *Mock) StoreErrors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeErrors
}

// UploadsFailed returns the number of times IncUploadsFailed was called.
func (m *Mock) UploadsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadsFailed
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
