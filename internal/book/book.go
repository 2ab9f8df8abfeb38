package book

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a book does not exist. Mutating operations
// also return it when the book exists but belongs to another uploader, so a
// caller cannot tell the two cases apart.
var ErrNotFound = errors.New("book not found")

// ErrDuplicate is returned when a book with the same ISBN already exists.
var ErrDuplicate = errors.New("book already exists")

// Book represents a cataloged book. Uploader references the user who created
// it; that user's books set must contain this book's id.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ISBN        string             `bson:"isbn" json:"isbn"`
	Title       string             `bson:"title" json:"title"`
	Published   string             `bson:"published" json:"published"`
	Author      string             `bson:"author" json:"author"`
	Genres      []string           `bson:"genres" json:"genres"`
	Rating      *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Uploader    primitive.ObjectID `bson:"uploader" json:"uploader"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Query defines filters for listing books.
type Query struct {
	Search string   // case-insensitive substring match on title
	Genres []string // match books carrying any of these genres
	Limit  int64    // result cap; 0 means uncapped
}

// GenreList accepts genres either as a JSON array or as the comma-joined
// string the browser client submits. Entries are trimmed and empties dropped.
type GenreList []string

func (g *GenreList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*g = SplitGenres(joined)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*g = normalizeGenres(items)
	return nil
}

// SplitGenres converts a comma-joined genre string into a clean genre set.
func SplitGenres(joined string) []string {
	return normalizeGenres(strings.Split(joined, ","))
}

func normalizeGenres(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
