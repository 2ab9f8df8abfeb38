package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session is the server-side record a session cookie points at. Deleting it
// invalidates the cookie regardless of the token's own expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the session persistence contract. The Redis store is the primary
// implementation; the in-memory store serves single-process deployments and
// tests.
type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
