// Package session tracks per-user interaction state: the active metrics
// record and the last generated summary. State lives in memory only and is
// gone on restart; concurrent sessions never share mutable state.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"valuation_builder/pkg/core/metrics"
)

// Session is one user's working state.
type Session struct {
	ID        string                  `json:"id"`
	Metrics   *metrics.CompanyMetrics `json:"metrics,omitempty"`
	Summary   string                  `json:"summary,omitempty"`
	Takeaways []string                `json:"takeaways,omitempty"`
	UpdatedAt time.Time               `json:"updated_at"`
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns a copy of the session state, so callers never hold a pointer
// into the map that another request is mutating.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session not found: %s", id)
	}
	return *s, nil
}

// SetMetrics stores a freshly normalized record under the session, creating
// the session if id is empty or unknown. Any previously generated summary
// belongs to the old record and is cleared.
func (m *Manager) SetMetrics(id string, record *metrics.CompanyMetrics) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = &Session{ID: uuid.New().String()}
		m.sessions[s.ID] = s
	}
	s.Metrics = record
	s.Summary = ""
	s.Takeaways = nil
	s.UpdatedAt = time.Now()
	return *s
}

// SetSummary stores generated summary text (and optional takeaways) on an
// existing session.
func (m *Manager) SetSummary(id, summaryText string, takeaways []string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session not found: %s", id)
	}
	s.Summary = summaryText
	s.Takeaways = takeaways
	s.UpdatedAt = time.Now()
	return *s, nil
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
