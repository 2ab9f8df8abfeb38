package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Open connects to MongoDB and verifies the connection with a bounded ping.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the stores rely on: books.isbn,
// authors.ssn and users.username.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	if _, err := db.Collection("books").Indexes().CreateOne(ctx, unique("isbn")); err != nil {
		return err
	}
	if _, err := db.Collection("authors").Indexes().CreateOne(ctx, unique("ssn")); err != nil {
		return err
	}
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, unique("username")); err != nil {
		return err
	}
	return nil
}
