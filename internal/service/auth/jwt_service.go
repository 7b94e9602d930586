package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and checks the bearer tokens that scope API calls to a user.
type JWTService interface {
	// GenerateToken creates a signed access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks the signature and lifetime of tokenString and
	// returns its claims. Expired tokens yield ErrExpiredToken, anything
	// else that fails yields ErrInvalidToken or ErrTokenNotYetValid.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the fields of a validated token that callers care about.
type Claims struct {
	UserID    uuid.UUID `json:"uid,omitempty"`
	TokenType string    `json:"type,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
