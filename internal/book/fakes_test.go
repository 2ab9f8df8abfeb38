package book

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeRepo mirrors the MongoRepo contract in memory, including the
// ownership-scoped mutations.
type fakeRepo struct {
	books map[string]Book // keyed by isbn
	err   error           // when set, every call fails with it
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: make(map[string]Book)}
}

func (f *fakeRepo) List(_ context.Context, q Query) ([]Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []Book{}
	for _, b := range f.books {
		if q.Search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(q.Search)) {
			continue
		}
		if len(q.Genres) > 0 && !hasAnyGenre(b.Genres, q.Genres) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func hasAnyGenre(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (f *fakeRepo) GetByISBN(_ context.Context, isbn string) (Book, error) {
	if f.err != nil {
		return Book{}, f.err
	}
	b, ok := f.books[isbn]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) Create(_ context.Context, b *Book) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := f.books[b.ISBN]; exists {
		return ErrDuplicate
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.CreatedAt = time.Now().UTC()
	if b.Genres == nil {
		b.Genres = []string{}
	}
	f.books[b.ISBN] = *b
	return nil
}

func (f *fakeRepo) ReplaceOwned(_ context.Context, isbn string, owner primitive.ObjectID, b Book) error {
	if f.err != nil {
		return f.err
	}
	existing, ok := f.books[isbn]
	if !ok || existing.Uploader != owner {
		return ErrNotFound
	}
	b.ID = existing.ID
	b.Uploader = existing.Uploader
	b.CreatedAt = existing.CreatedAt
	if b.Genres == nil {
		b.Genres = []string{}
	}
	delete(f.books, isbn)
	f.books[b.ISBN] = b
	return nil
}

func (f *fakeRepo) DeleteOwned(_ context.Context, isbn string, owner primitive.ObjectID) (Book, error) {
	if f.err != nil {
		return Book{}, f.err
	}
	existing, ok := f.books[isbn]
	if !ok || existing.Uploader != owner {
		return Book{}, ErrNotFound
	}
	delete(f.books, isbn)
	return existing, nil
}

// fakeUploaderIndex records the book sets per user.
type fakeUploaderIndex struct {
	books     map[primitive.ObjectID][]primitive.ObjectID
	addErr    error
	removeErr error
}

func newFakeUploaderIndex() *fakeUploaderIndex {
	return &fakeUploaderIndex{books: make(map[primitive.ObjectID][]primitive.ObjectID)}
}

func (f *fakeUploaderIndex) AddBook(_ context.Context, userID, bookID primitive.ObjectID) error {
	if f.addErr != nil {
		return f.addErr
	}
	for _, id := range f.books[userID] {
		if id == bookID {
			return nil
		}
	}
	f.books[userID] = append(f.books[userID], bookID)
	return nil
}

func (f *fakeUploaderIndex) RemoveBook(_ context.Context, userID, bookID primitive.ObjectID) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	kept := f.books[userID][:0]
	for _, id := range f.books[userID] {
		if id != bookID {
			kept = append(kept, id)
		}
	}
	f.books[userID] = kept
	return nil
}

func (f *fakeUploaderIndex) contains(userID, bookID primitive.ObjectID) bool {
	for _, id := range f.books[userID] {
		if id == bookID {
			return true
		}
	}
	return false
}
