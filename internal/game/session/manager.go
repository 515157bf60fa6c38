// Package session runs player sessions against a loaded game and tracks the
// sessions a server is hosting.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Manager tracks all active sessions.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	byOwner  map[string]uuid.UUID
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		byOwner:  make(map[string]uuid.UUID),
	}
}

// Add registers a session.
//
// Precondition: s must be non-nil with a non-empty Owner.
// Postcondition: Returns an error if the id or the owner is already registered.
func (m *Manager) Add(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return fmt.Errorf("session %s already registered", s.ID)
	}
	if _, exists := m.byOwner[s.Owner]; exists {
		return fmt.Errorf("player %q already connected", s.Owner)
	}
	m.sessions[s.ID] = s
	m.byOwner[s.Owner] = s.ID
	return nil
}

// Remove unregisters a session.
//
// Postcondition: Returns an error if the id is not registered.
func (m *Manager) Remove(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, exists := m.sessions[id]
	if !exists {
		return fmt.Errorf("session %s not found", id)
	}
	delete(m.byOwner, s.Owner)
	delete(m.sessions, id)
	return nil
}

// Get returns the session with the given id.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetByOwner returns the session owned by the named player.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) GetByOwner(owner string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byOwner[owner]
	if !ok {
		return nil, false
	}
	return m.sessions[id], true
}

// Owners returns the names of all connected players.
func (m *Manager) Owners() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.byOwner))
	for owner := range m.byOwner {
		out = append(out, owner)
	}
	return out
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
