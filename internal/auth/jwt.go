package auth

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sovannra/blogpress-core/internal/accounts"
)

// Sessions live 30 days unless SESSION_EXPIRES_HOURS says otherwise.
const defaultSessionHours = 30 * 24

type Claims struct {
	AccountID    string `json:"id"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(a *accounts.Account) (string, error) {
	hours := defaultSessionHours
	if v := os.Getenv("SESSION_EXPIRES_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			hours = h
		}
	}
	now := time.Now()
	claims := Claims{
		AccountID:    a.ID.Hex(),
		Email:        a.Email,
		ProfileImage: a.ProfileImage,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(hours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := []byte(os.Getenv("SESSION_SECRET"))
	return token.SignedString(secret)
}

func ParseToken(tokenStr string) (*Claims, error) {
	secret := []byte(os.Getenv("SESSION_SECRET"))
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
