package repository

import "sync"

// AccessTokenRepository stores each user's aggregation-API access token.
type AccessTokenRepository interface {
	Set(username, accessToken string) error
	Get(username string) (string, bool)
}

// AccessTokenRepositoryMemory is an in-memory implementation of
// AccessTokenRepository.
type AccessTokenRepositoryMemory struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewAccessTokenRepositoryMemory() *AccessTokenRepositoryMemory {
	return &AccessTokenRepositoryMemory{
		tokens: make(map[string]string),
	}
}

func (r *AccessTokenRepositoryMemory) Set(username, accessToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[username] = accessToken
	return nil
}

func (r *AccessTokenRepositoryMemory) Get(username string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[username]
	return token, ok
}
