package metrics

import (
	"sync"

	"github.com/mauv0809/qwstats/ktxstats"
)

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	decoded         map[ktxstats.Revision]int
	failed          map[string]int
	decodeDurations []float64
	filesRead       map[string]int
	filesFailed     int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		decoded:         make(map[ktxstats.Revision]int),
		failed:          make(map[string]int),
		decodeDurations: make([]float64, 0),
		filesRead:       make(map[string]int),
	}
}

func (m *Mock) IncDecoded(rev ktxstats.Revision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decoded[rev]++
}

func (m *Mock) IncDecodeFailed(rev ktxstats.Revision, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[kind]++
}

func (m *Mock) ObserveDecodeDuration(rev ktxstats.Revision, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decodeDurations = append(m.decodeDurations, seconds)
}

func (m *Mock) IncFilesRead(compression string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filesRead[compression]++
}

func (m *Mock) IncFilesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filesFailed++
}

// Decoded returns how many documents of rev were decoded.
func (m *Mock) Decoded(rev ktxstats.Revision) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decoded[rev]
}

// Failed returns how many decodes failed with the given error kind.
func (m *Mock) Failed(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed[kind]
}

// DecodeDurations returns the number of observed decode durations.
func (m *Mock) DecodeDurations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.decodeDurations)
}

// FilesRead returns how many files with the given compression were read.
func (m *Mock) FilesRead(compression string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filesRead[compression]
}

// FilesFailed returns the number of times IncFilesFailed was called.
func (m *Mock) FilesFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filesFailed
}
