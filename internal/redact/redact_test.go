package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/scry-study/internal/redact"
)

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain message", "session not found", "session not found"},
		{
			"connection string",
			"dial postgres://scry:hunter2@db:5432/scry failed",
			"dial [REDACTED_CREDENTIAL]db:5432/scry failed",
		},
		{"password parameter", "login with password=hunter22", "login with [REDACTED_CREDENTIAL]"},
		{
			"jwt",
			"bad header eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.abc123def",
			"bad header [REDACTED_JWT]",
		},
		{"email", "user alice@example.com exists", "user [REDACTED_EMAIL] exists"},
		{
			"file path",
			"open /var/lib/scry/data.json: permission denied",
			"open [REDACTED_PATH]: permission denied",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, redact.String(tc.input))
		})
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("load: %w", errors.New("password=hunter22"))
	assert.Equal(t, "load: [REDACTED_CREDENTIAL]", redact.Error(err))
}
