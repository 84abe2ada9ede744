package repository

// SessionRepository maps opaque bearer tokens to usernames.
type SessionRepository interface {
	Put(token, username string) error
	Get(token string) (string, bool)
	Delete(token string) error
}
