package repository

import "sync"

// SessionRepositoryMemory is an in-memory implementation of
// SessionRepository, suitable for single-instance deployments.
type SessionRepositoryMemory struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewSessionRepositoryMemory() *SessionRepositoryMemory {
	return &SessionRepositoryMemory{
		sessions: make(map[string]string),
	}
}

func (r *SessionRepositoryMemory) Put(token, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = username
	return nil
}

func (r *SessionRepositoryMemory) Get(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	username, ok := r.sessions[token]
	return username, ok
}

func (r *SessionRepositoryMemory) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}
