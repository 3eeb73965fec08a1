package quickfind

import (
	"sort"
	"sync"
)

// Manager owns one session per open document.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     []Option
	log      Logger
}

// NewManager creates a manager whose sessions use opts.
func NewManager(opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
		log:      o.logger,
	}
}

// Get returns the session for document id, creating it for h on first use.
func (m *Manager) Get(id string, h Host) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := NewSession(id, h, m.opts...)
	m.sessions[id] = s
	m.log.Debug("[%s] created session", id)
	return s
}

// Lookup returns the session for document id without creating one.
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops the session for document id.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	m.log.Debug("[%s] deleted session", id)
	return true
}

// Reset returns the session for document id, if any, to the
// uninitialized state.
func (m *Manager) Reset(id string) bool {
	s, ok := m.Lookup(id)
	if ok {
		s.Reset()
	}
	return ok
}

// Len returns the number of sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// IDs returns the document ids with a session, sorted.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Teardown calls fn for every session, in document id order, then drops
// all sessions.
func (m *Manager) Teardown(fn func(*Session)) {
	for _, id := range m.IDs() {
		s, ok := m.Lookup(id)
		if !ok {
			continue
		}
		if fn != nil {
			fn(s)
		}
		m.Remove(id)
	}
	m.log.Debug("session manager torn down")
}
