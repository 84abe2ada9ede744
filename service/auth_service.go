package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Galaktikon/better-loanz-fintech-capstone/domain"
	"github.com/Galaktikon/better-loanz-fintech-capstone/repository"
)

var (
	ErrMissingCredentials = errors.New("username and password required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	loans    repository.LoanRepository
}

// NewAuthService creates a new AuthService with the given repositories.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	loans repository.LoanRepository,
) *AuthService {
	return &AuthService{users: users, sessions: sessions, loans: loans}
}

// Signup registers a new account and seeds it with an empty loan set.
func (s *AuthService) Signup(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	err := s.users.Create(domain.User{
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return s.loans.Replace(username, []domain.Loan{})
}

// Login checks credentials and issues an opaque bearer token.
func (s *AuthService) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, ok := s.users.Get(username)
	if !ok || user.Password != password {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.Put(token, username); err != nil {
		return "", err
	}
	return token, nil
}

// Logout drops the session. Unknown tokens are a no-op, matching the
// idempotent logout endpoint.
func (s *AuthService) Logout(token string) error {
	return s.sessions.Delete(token)
}

// Authenticate resolves a bearer token to a username.
func (s *AuthService) Authenticate(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	return s.sessions.Get(token)
}
