package usecases

import (
	"sort"
	"sync"

	"kyc-bot.backend/internal/domain/entities"
)

// SessionTable maps chat users to their transient workflow progress.
// Callers get copies; mutations go through Update.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.Session
}

// NewSessionTable creates an empty session table
func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[int64]*entities.Session)}
}

// Ensure creates the session if absent and refreshes its chat reference.
func (t *SessionTable) Ensure(userID, chatID int64) (entities.Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[userID]
	if !ok {
		s = &entities.Session{UserID: userID, ChatID: chatID}
		t.sessions[userID] = s
	} else if chatID != 0 {
		s.ChatID = chatID
	}
	return *s, !ok
}

// Get returns a copy of the session for userID
func (t *SessionTable) Get(userID int64) (entities.Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.sessions[userID]
	if !ok {
		return entities.Session{}, false
	}
	return *s, true
}

// Update applies fn to the stored session and returns the result, or false if absent.
func (t *SessionTable) Update(userID int64, fn func(*entities.Session)) (entities.Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[userID]
	if !ok {
		return entities.Session{}, false
	}
	fn(s)
	return *s, true
}

// ListByState returns sessions in state ordered by user id
func (t *SessionTable) ListByState(state entities.WorkflowState) []entities.Session {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []entities.Session
	for _, s := range t.sessions {
		if s.State == state {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// CountByState counts sessions per state; every state is present in the result.
func (t *SessionTable) CountByState() map[entities.WorkflowState]int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := make(map[entities.WorkflowState]int, len(entities.AllStates))
	for _, st := range entities.AllStates {
		counts[st] = 0
	}
	for _, s := range t.sessions {
		counts[s.State]++
	}
	return counts
}
