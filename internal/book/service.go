package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service orchestrates book mutations: persist, then reconcile the owning
// user's books set. Reads pass straight through to the repository.
type Service struct {
	repo      Repository
	uploaders UploaderIndex
}

func NewService(repo Repository, uploaders UploaderIndex) *Service {
	return &Service{repo: repo, uploaders: uploaders}
}

// List returns books matching the query.
func (s *Service) List(ctx context.Context, q Query) ([]Book, error) {
	return s.repo.List(ctx, q)
}

// GetByISBN returns a book by its ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// Create persists a book uploaded by the given user and adds its id to the
// user's books set. The two writes are not transactional: if the second one
// fails the book exists without a back-reference and the error is reported
// to the caller rather than repaired here.
func (s *Service) Create(ctx context.Context, uploader primitive.ObjectID, b Book) (Book, error) {
	b.Uploader = uploader
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	if err := s.uploaders.AddBook(ctx, uploader, b.ID); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Update replaces all mutable fields of the caller's book. A book uploaded
// by a different user looks exactly like a missing one (ErrNotFound). The
// uploader reference does not change, so no user reconciliation is needed.
func (s *Service) Update(ctx context.Context, isbn string, caller primitive.ObjectID, b Book) error {
	return s.repo.ReplaceOwned(ctx, isbn, caller, b)
}

// Delete removes the caller's book and pulls its id out of the caller's
// books set. When nothing matched, the user record is left untouched.
func (s *Service) Delete(ctx context.Context, isbn string, caller primitive.ObjectID) error {
	deleted, err := s.repo.DeleteOwned(ctx, isbn, caller)
	if err != nil {
		return err
	}
	return s.uploaders.RemoveBook(ctx, caller, deleted.ID)
}
