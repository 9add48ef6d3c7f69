package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/grader"
)

// Manager keys live sessions explicitly by ID. Each session belongs to
// one client; the manager only guards the map, never the sessions
// themselves.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns its ID.
func (m *Manager) Create(g *glyph.Glyph, p grader.Policy) (string, *Session) {
	id := uuid.NewString()
	s := New(g, p)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	return id, s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
