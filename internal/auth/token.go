package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the identity claims embedded in an access token.
//
// The wire names (user_id, email, role) plus the registered iat/exp claims
// are the platform's token payload contract.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens.
//
// The signing secret and token lifetime are fixed at construction; the
// service holds no other state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// defaultTokenTTL is used when no lifetime is configured.
const defaultTokenTTL = time.Hour

// NewTokenService creates a token service with the given symmetric signing
// secret and token lifetime. A non-positive ttl falls back to one hour.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed HS256 JWT for a user.
//
// The token embeds the user ID, email, and role, with expiry set to
// issued-at plus the configured lifetime.
func (ts *TokenService) Issue(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// Validate verifies a token's signature and expiry and returns its claims.
//
// Errors: ErrTokenExpired when past the exp claim, ErrTokenMissingSubject
// when the user_id claim is absent, ErrTokenMalformed for anything that does
// not parse or verify.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return ts.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.UserID == 0 {
		return nil, ErrTokenMissingSubject
	}

	return claims, nil
}
