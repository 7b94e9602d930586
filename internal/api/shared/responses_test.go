package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestRespondWithError_IncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Session not found")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", resp.Error)
	assert.Equal(t, GetTraceID(req.Context()), resp.TraceID)
}

func TestRespondWithErrorAndLog_RedactsAndHidesDetails(t *testing.T) {
	t.Parallel()

	ctx, buf := logger.CaptureContext(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil).WithContext(SetTraceID(ctx))
	w := httptest.NewRecorder()

	err := errors.New("dial postgres://scry:hunter2@db:5432/scry failed")
	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "An unexpected error occurred", err)

	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.NotContains(t, w.Body.String(), "postgres")
	assert.NotContains(t, buf.String(), "hunter2")
	logger.AssertLogContains(t, buf, "API error response")
	logger.AssertLogField(t, buf, "level", "ERROR")
}

func TestRespondWithErrorAndLog_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		opts   []ResponseOption
		level  string
	}{
		{"client error", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated client error", http.StatusUnauthorized, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
		{"rate limited", http.StatusTooManyRequests, nil, "WARN"},
		{"server error", http.StatusBadGateway, nil, "ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx, buf := logger.CaptureContext(t)
			req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
			RespondWithErrorAndLog(httptest.NewRecorder(), req, tc.status, "msg", nil, tc.opts...)
			logger.AssertLogField(t, buf, "level", tc.level)
		})
	}
}
