package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"  validate:"gte=18"`
}

type selfValidating struct {
	Name string `json:"name"`
}

func (s selfValidating) Validate() error {
	if s.Name == "invalid" {
		return errors.New("invalid name")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
		errText string
	}{
		{name: "valid json", body: `{"name": "test", "age": 30}`},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "invalid json", body: `{"name": "test",}`, errText: "invalid character"},
		{name: "unknown field", body: `{"name": "test", "admin": true}`, errText: "unknown field"},
		{name: "trailing data", body: `{"name": "test"} {}`, errText: "unexpected data"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := DecodeJSON(req, &p)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, payload{Name: "test", Age: 30}, p)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&payload{Name: "a", Age: 18}))
	assert.Error(t, ValidateRequest(&payload{Age: 18}))
	assert.Error(t, ValidateRequest(&payload{Name: "a", Age: 3}))

	assert.NoError(t, ValidateRequest(selfValidating{Name: "ok"}))
	assert.Error(t, ValidateRequest(selfValidating{Name: "invalid"}))
}
