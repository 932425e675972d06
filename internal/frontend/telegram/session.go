package telegram

import "sync"

// sessionManager handles access control and keeps one listing request in flight per user.
type sessionManager struct {
	mu      sync.Mutex
	busy    map[int64]bool
	allowed map[int64]bool // nil or empty = allow all
}

// newSessionManager creates a session manager.
// If allowedUserIDs is empty, all users are allowed.
func newSessionManager(allowedUserIDs []int64) *sessionManager {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	return &sessionManager{
		busy:    make(map[int64]bool),
		allowed: allowed,
	}
}

// isAllowed checks if a user is authorized to use the bot.
func (sm *sessionManager) isAllowed(userID int64) bool {
	if len(sm.allowed) == 0 {
		return true
	}
	return sm.allowed[userID]
}

// begin marks a request as in flight for userID.
// It returns false if one is already running.
func (sm *sessionManager) begin(userID int64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.busy[userID] {
		return false
	}
	sm.busy[userID] = true
	return true
}

// end clears the in-flight mark set by begin.
func (sm *sessionManager) end(userID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.busy, userID)
}
