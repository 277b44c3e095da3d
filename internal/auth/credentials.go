package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/sovannra/blogpress-core/internal/accounts"
)

var (
	ErrMissingInput       = errors.New("missing email or password")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountStore is the slice of the persistence layer credential checks need.
type AccountStore interface {
	FindAccountByEmail(ctx context.Context, email string) (*accounts.Account, error)
}

// Authenticate verifies an email/password pair against the stored hash.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func Authenticate(ctx context.Context, store AccountStore, email, password string) (*accounts.Account, error) {
	if email == "" || password == "" {
		return nil, ErrMissingInput
	}

	a, err := store.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return a, nil
}
