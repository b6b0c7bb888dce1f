// Package session provides the per-chat conversation state store.
// Each chat owns at most one Session: a state tag plus the draft fields
// accumulated by the current multi-step form. Sessions are created on
// first use, replaced on every transition, and cleared on terminal
// states. There is no timeout-based expiry: an abandoned conversation
// stays pending until the next message from that chat.
package session

import "sync"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores the conversation state and draft form data for a chat.
type Session struct {
	State State
	Data  map[string]any
}

// Manager orchestrates chat sessions and state transitions.
type Manager interface {
	Get(chatID int64) *Session
	SetState(chatID int64, st State)
	GetState(chatID int64) State
	InProgress(chatID int64) bool

	Set(chatID int64, key string, value any)
	Value(chatID int64, key string) (any, bool)
	Int64(chatID int64, key string) (int64, bool)
	String(chatID int64, key string) (string, bool)
	Int(chatID int64, key string) (int, bool)
	Delete(chatID int64, key string)

	// Clear removes the whole session: state and draft data.
	Clear(chatID int64)
}

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemory constructs the in-memory Manager used in production; session
// lifetime is one conversation, so nothing needs to survive a restart.
func NewMemory() Manager {
	return &memoryManager{sessions: make(map[int64]*Session)}
}

func (m *memoryManager) session(chatID int64) *Session {
	s, ok := m.sessions[chatID]
	if !ok {
		s = &Session{State: StateIdle, Data: make(map[string]any)}
		m.sessions[chatID] = s
	}
	return s
}

// Get returns a snapshot of the chat's session, or an idle one if none exists.
func (m *memoryManager) Get(chatID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[chatID]; ok {
		snap := &Session{State: s.State, Data: make(map[string]any, len(s.Data))}
		for k, v := range s.Data {
			snap.Data[k] = v
		}
		return snap
	}
	return &Session{State: StateIdle, Data: make(map[string]any)}
}

func (m *memoryManager) SetState(chatID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(chatID).State = st
}

func (m *memoryManager) GetState(chatID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[chatID]; ok {
		return s.State
	}
	return StateIdle
}

// InProgress reports whether the chat has an active conversation.
func (m *memoryManager) InProgress(chatID int64) bool {
	return m.GetState(chatID) != StateIdle
}

func (m *memoryManager) Set(chatID int64, key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(chatID).Data[key] = value
}

func (m *memoryManager) Value(chatID int64, key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[chatID]
	if !ok {
		return nil, false
	}
	v, ok := s.Data[key]
	return v, ok
}

func (m *memoryManager) Int64(chatID int64, key string) (int64, bool) {
	v, ok := m.Value(chatID, key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

func (m *memoryManager) Int(chatID int64, key string) (int, bool) {
	n, ok := m.Int64(chatID, key)
	return int(n), ok
}

func (m *memoryManager) String(chatID int64, key string) (string, bool) {
	v, ok := m.Value(chatID, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *memoryManager) Delete(chatID int64, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		delete(s.Data, key)
	}
}

// Clear removes the entire session for a chat.
func (m *memoryManager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
