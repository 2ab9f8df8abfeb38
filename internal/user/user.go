package user

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when the username is already taken.
	ErrDuplicate = errors.New("username already taken")
	// ErrUnauthorized is returned on a failed credential check.
	ErrUnauthorized = errors.New("invalid username or password")
)

// User owns the books it uploaded: Books is a membership set of book ids,
// kept in sync by the book mutation pipeline.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Name         string               `bson:"name" json:"name"`
	PasswordHash string               `bson:"passwordHash" json:"-"`
	Books        []primitive.ObjectID `bson:"books" json:"books"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}
