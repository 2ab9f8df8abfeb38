package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context, q Query) ([]Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	// Create persists a new book. Returns ErrDuplicate when the ISBN is taken.
	Create(ctx context.Context, b *Book) error
	// ReplaceOwned replaces all mutable fields of the book with the given
	// ISBN, but only when owner uploaded it. Returns ErrNotFound when no
	// book matches, whether it is absent or owned by someone else.
	ReplaceOwned(ctx context.Context, isbn string, owner primitive.ObjectID, b Book) error
	// DeleteOwned deletes the owner's book with the given ISBN and returns
	// the deleted document. Same ErrNotFound collapsing as ReplaceOwned.
	DeleteOwned(ctx context.Context, isbn string, owner primitive.ObjectID) (Book, error)
}

// UploaderIndex maintains the uploader's book-membership set on the user
// record. Satisfied by the user repository.
type UploaderIndex interface {
	AddBook(ctx context.Context, userID, bookID primitive.ObjectID) error
	RemoveBook(ctx context.Context, userID, bookID primitive.ObjectID) error
}
