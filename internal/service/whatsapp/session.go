package whatsapp

import (
	"sync"

	"github.com/DKUMARGUPTA/poultrymitra-backend/pkg/clients/gemini"
)

// SessionManager holds per-user assistant conversation states.
type SessionManager struct {
	sessions map[string]gemini.ConversationState
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]gemini.ConversationState),
	}
}

// GetSession retrieves the current state for a user.
func (sm *SessionManager) GetSession(userID string) gemini.ConversationState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if state, exists := sm.sessions[userID]; exists {
		return state
	}
	return gemini.ConversationState{}
}

// UpdateSession stores the state for a user.
func (sm *SessionManager) UpdateSession(userID string, state gemini.ConversationState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[userID] = state
}

// ClearSession removes a user's session.
func (sm *SessionManager) ClearSession(userID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, userID)
}
