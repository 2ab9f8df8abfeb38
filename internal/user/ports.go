package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the contract for user data storage. AddBook and
// RemoveBook also satisfy the book package's UploaderIndex port.
type Repository interface {
	// Create persists a new user. Returns ErrDuplicate when the username
	// is taken.
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (User, error)
	AddBook(ctx context.Context, userID, bookID primitive.ObjectID) error
	RemoveBook(ctx context.Context, userID, bookID primitive.ObjectID) error
}
