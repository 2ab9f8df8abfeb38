package book

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(db *mongo.Database, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: db.Collection("books"), timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) List(ctx context.Context, q Query) ([]Book, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	if len(q.Genres) > 0 {
		filter["genres"] = bson.M{"$in": q.Genres}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cursor, err := r.coll.Find(timeoutCtx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(timeoutCtx)

	books := []Book{}
	if err := cursor.All(timeoutCtx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *MongoRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	err := r.coll.FindOne(timeoutCtx, bson.M{"isbn": isbn}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *MongoRepo) Create(ctx context.Context, b *Book) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.CreatedAt = time.Now().UTC()
	if b.Genres == nil {
		b.Genres = []string{}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(timeoutCtx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepo) ReplaceOwned(ctx context.Context, isbn string, owner primitive.ObjectID, b Book) error {
	if b.Genres == nil {
		b.Genres = []string{}
	}
	// Full replace of the mutable fields; _id, uploader and createdAt are
	// left untouched.
	update := bson.M{"$set": bson.M{
		"isbn":        b.ISBN,
		"title":       b.Title,
		"published":   b.Published,
		"author":      b.Author,
		"genres":      b.Genres,
		"rating":      b.Rating,
		"description": b.Description,
	}}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.UpdateOne(timeoutCtx, bson.M{"isbn": isbn, "uploader": owner}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteOwned(ctx context.Context, isbn string, owner primitive.ObjectID) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var deleted Book
	err := r.coll.FindOneAndDelete(timeoutCtx, bson.M{"isbn": isbn, "uploader": owner}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return deleted, nil
}
