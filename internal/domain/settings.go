package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultNewItemsPerDay is used when a user has not chosen a quota.
const DefaultNewItemsPerDay = 10

var settingsValidator = validator.New()

// Settings are a user's per-deck study preferences.
type Settings struct {
	NewItemsPerDay int `json:"new_items_per_day" validate:"gte=1,lte=1000"`
}

// DefaultSettings returns the settings applied to a user with no saved preferences.
func DefaultSettings() Settings {
	return Settings{NewItemsPerDay: DefaultNewItemsPerDay}
}

// Validate checks the settings.
func (s Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}
