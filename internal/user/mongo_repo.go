package user

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
	return &MongoRepo{coll: db.Collection("users"), timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) Create(ctx context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now().UTC()
	if u.Books == nil {
		u.Books = []primitive.ObjectID{}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(timeoutCtx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u User
	err := r.coll.FindOne(timeoutCtx, bson.M{"username": username}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (User, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u User
	err := r.coll.FindOne(timeoutCtx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// AddBook adds bookID to the user's books set. $addToSet keeps the set
// duplicate-free even if the same reconciliation runs twice.
func (r *MongoRepo) AddBook(ctx context.Context, userID, bookID primitive.ObjectID) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.UpdateByID(timeoutCtx, userID, bson.M{"$addToSet": bson.M{"books": bookID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) RemoveBook(ctx context.Context, userID, bookID primitive.ObjectID) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.UpdateByID(timeoutCtx, userID, bson.M{"$pull": bson.M{"books": bookID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
