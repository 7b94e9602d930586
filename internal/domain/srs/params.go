package srs

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Default model tuning.
const (
	DefaultDesiredRetention    = 0.9
	DefaultMaximumIntervalDays = 36500
)

var paramsValidator = validator.New()

// Params tunes the FSRS model.
type Params struct {
	// DesiredRetention is the target recall probability at the due date.
	DesiredRetention float64 `validate:"gt=0,lt=1"`
	// MaximumIntervalDays caps the scheduled interval.
	MaximumIntervalDays int `validate:"gte=1"`
}

// NewDefaultParams returns the stock FSRS tuning.
func NewDefaultParams() Params {
	return Params{
		DesiredRetention:    DefaultDesiredRetention,
		MaximumIntervalDays: DefaultMaximumIntervalDays,
	}
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if err := paramsValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid memory model params: %w", err)
	}
	return nil
}
