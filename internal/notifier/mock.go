package notifier

import (
	"sync"

	"github.com/mkrogh/boldklub/internal/domain"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Err, when set, is returned from every Send call.
	Err error

	MatchResultCreatedCalls []*domain.MatchResult
	MatchResultUpdatedCalls []*domain.MatchResult
	EventCreatedCalls       []*domain.Event
	EventUpdatedCalls       []*domain.Event
	TournamentCreatedCalls  []*domain.Tournament
	TournamentUpdatedCalls  []*domain.Tournament
	CommentCreatedCalls     []*domain.Comment
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchResultCreatedCalls = nil
	m.MatchResultUpdatedCalls = nil
	m.EventCreatedCalls = nil
	m.EventUpdatedCalls = nil
	m.TournamentCreatedCalls = nil
	m.TournamentUpdatedCalls = nil
	m.CommentCreatedCalls = nil
}

// Calls returns the total number of Send invocations recorded.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.MatchResultCreatedCalls) + len(m.MatchResultUpdatedCalls) +
		len(m.EventCreatedCalls) + len(m.EventUpdatedCalls) +
		len(m.TournamentCreatedCalls) + len(m.TournamentUpdatedCalls) +
		len(m.CommentCreatedCalls)
}

func (m *Mock) SendMatchResultCreated(result *domain.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchResultCreatedCalls = append(m.MatchResultCreatedCalls, result)
	return m.Err
}

func (m *Mock) SendMatchResultUpdated(result *domain.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchResultUpdatedCalls = append(m.MatchResultUpdatedCalls, result)
	return m.Err
}

func (m *Mock) SendEventCreated(event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventCreatedCalls = append(m.EventCreatedCalls, event)
	return m.Err
}

func (m *Mock) SendEventUpdated(event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventUpdatedCalls = append(m.EventUpdatedCalls, event)
	return m.Err
}

func (m *Mock) SendTournamentCreated(tournament *domain.Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentCreatedCalls = append(m.TournamentCreatedCalls, tournament)
	return m.Err
}

func (m *Mock) SendTournamentUpdated(tournament *domain.Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentUpdatedCalls = append(m.TournamentUpdatedCalls, tournament)
	return m.Err
}

func (m *Mock) SendCommentCreated(comment *domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommentCreatedCalls = append(m.CommentCreatedCalls, comment)
	return m.Err
}
