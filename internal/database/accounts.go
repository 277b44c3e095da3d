package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sovannra/blogpress-core/internal/accounts"
)

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	var a accounts.Account
	if err := s.accounts.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) InsertAccount(ctx context.Context, a *accounts.Account) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.accounts.InsertOne(ctx, a)
	return err
}
