package author

import (
	"context"
)

// Repository defines the contract for author data storage.
type Repository interface {
	List(ctx context.Context) ([]Author, error)
	GetBySSN(ctx context.Context, ssn string) (Author, error)
	Create(ctx context.Context, a *Author) error
	// DeleteBySSN removes the author when present; deleting an absent
	// author is not an error.
	DeleteBySSN(ctx context.Context, ssn string) error
}
