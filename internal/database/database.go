package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Store owns the mongo client for the life of the process and exposes
// typed access to the two collections the app uses.
type Store struct {
	client   *mongo.Client
	accounts *mongo.Collection
	posts    *mongo.Collection
}

func Connect(ctx context.Context) (*Store, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "blogpress"
	}

	log.Printf("connecting to mongodb db=%s", dbName)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(dbName)
	s := &Store{
		client:   client,
		accounts: db.Collection("accounts"),
		posts:    db.Collection("posts"),
	}

	// The duplicate-email pre-check in the signup handler is only a
	// courtesy; this index is the authoritative guard.
	_, err = s.accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("email index: %w", err)
	}

	log.Println("database connection established")
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
