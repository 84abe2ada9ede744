package repository

import (
	"errors"
	"sync"

	"github.com/Galaktikon/better-loanz-fintech-capstone/domain"
)

var ErrUsernameTaken = errors.New("username already exists")

// UserRepositoryMemory is an in-memory implementation of UserRepository.
type UserRepositoryMemory struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepositoryMemory creates a new in-memory user repository.
func NewUserRepositoryMemory() *UserRepositoryMemory {
	return &UserRepositoryMemory{
		users: make(map[string]domain.User),
	}
}

func (r *UserRepositoryMemory) Create(user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	r.users[user.Username] = user
	return nil
}

func (r *UserRepositoryMemory) Get(username string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	return user, ok
}
