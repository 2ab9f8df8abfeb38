package author

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(db *mongo.Database, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: db.Collection("authors"), timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) List(ctx context.Context) ([]Author, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(timeoutCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(timeoutCtx)

	authors := []Author{}
	if err := cursor.All(timeoutCtx, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *MongoRepo) GetBySSN(ctx context.Context, ssn string) (Author, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var a Author
	err := r.coll.FindOne(timeoutCtx, bson.M{"ssn": ssn}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Author{}, ErrNotFound
		}
		return Author{}, err
	}
	return a, nil
}

// Create enforces the required fields at the store boundary; there is no
// handler-level validation on author routes.
func (r *MongoRepo) Create(ctx context.Context, a *Author) error {
	if a.SSN == "" || a.Name == "" || a.Gender == "" {
		return ErrInvalid
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.coll.InsertOne(timeoutCtx, a)
	return err
}

func (r *MongoRepo) DeleteBySSN(ctx context.Context, ssn string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.coll.DeleteOne(timeoutCtx, bson.M{"ssn": ssn})
	return err
}
