package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/service/study"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT used for API authorization.
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// StartSessionRequest defines the payload for starting a study session.
// Deck and direction come from the path.
type StartSessionRequest struct {
	Kind    string              `json:"kind"    validate:"omitempty,oneof=regular practice_ahead extra_new"`
	Count   int                 `json:"count"   validate:"gte=0"`
	Filters map[string][]string `json:"filters"`
}

// AnswerRequest defines the payload for grading the current card.
type AnswerRequest struct {
	Grade domain.Grade `json:"grade" validate:"required"`
}

// SettingsRequest defines the payload for updating a deck's settings.
type SettingsRequest struct {
	NewItemsPerDay int `json:"new_items_per_day" validate:"required,gte=1,lte=1000"`
}

// SettingsResponse echoes a deck's effective settings.
type SettingsResponse struct {
	Deck           string `json:"deck"`
	NewItemsPerDay int    `json:"new_items_per_day"`
}

// DecksResponse lists the registered decks.
type DecksResponse struct {
	Decks []study.DeckInfo `json:"decks"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
