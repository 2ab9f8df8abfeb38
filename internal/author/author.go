package author

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when an author is not found.
var ErrNotFound = errors.New("author not found")

// ErrInvalid is returned by the store when a required field is missing.
// Surfaced as a generic server error, matching the route contract.
var ErrInvalid = errors.New("author record invalid")

// Author has no owner; author routes carry no authentication.
type Author struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SSN     string             `bson:"ssn" json:"ssn"`
	Name    string             `bson:"name" json:"name"`
	Gender  string             `bson:"gender" json:"gender"`
	Birth   string             `bson:"birth,omitempty" json:"birth,omitempty"`
	Address string             `bson:"address,omitempty" json:"address,omitempty"`
}
