package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/service/study"
)

// StudyHandler exposes study sessions, deck summaries and settings.
type StudyHandler struct {
	study  study.Service
	logger *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc study.Service, logger *slog.Logger) *StudyHandler {
	if svc == nil {
		panic("study service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		study:  svc,
		logger: logger.With(slog.String("component", "study_handler")),
	}
}

// ListDecks handles GET /decks.
func (h *StudyHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, DecksResponse{Decks: h.study.Decks()})
}

// Summary handles GET /decks/{deck}/{direction}/summary. Query parameters
// are passed through as deck filters.
func (h *StudyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.study.Summary(r.Context(), userID,
		chi.URLParam(r, "deck"), chi.URLParam(r, "direction"), r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// StartSession handles POST /decks/{deck}/{direction}/sessions. An empty body
// starts a regular session.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if r.ContentLength != 0 {
		if !decodeAndValidate(w, r, &req) {
			return
		}
	}

	kind, err := study.ParseKind(req.Kind)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.study.Start(r.Context(), userID, study.StartRequest{
		Deck:      chi.URLParam(r, "deck"),
		Direction: chi.URLParam(r, "direction"),
		Kind:      kind,
		Count:     req.Count,
		Filters:   req.Filters,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start session")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("session started",
		slog.String("session_id", view.ID.String()),
		slog.String("deck", view.Deck),
		slog.Int("total", view.Total))
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetSession handles GET /sessions/{id}.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndSession(w, r)
	if !ok {
		return
	}

	view, err := h.study.Get(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Answer handles POST /sessions/{id}/answer.
func (h *StudyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndSession(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.study.Answer(r.Context(), userID, sessionID, req.Grade)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Intervals handles GET /sessions/{id}/intervals.
func (h *StudyHandler) Intervals(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndSession(w, r)
	if !ok {
		return
	}

	intervals, err := h.study.Intervals(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to preview intervals")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, intervals)
}

// EndSession handles DELETE /sessions/{id}.
func (h *StudyHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := userAndSession(w, r)
	if !ok {
		return
	}

	if err := h.study.End(r.Context(), userID, sessionID); err != nil {
		HandleAPIError(w, r, err, "Failed to end session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /decks/{deck}/settings.
func (h *StudyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	deck := chi.URLParam(r, "deck")
	settings, err := h.study.GetSettings(r.Context(), userID, deck)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{
		Deck:           deck,
		NewItemsPerDay: settings.NewItemsPerDay,
	})
}

// PutSettings handles PUT /decks/{deck}/settings.
func (h *StudyHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck := chi.URLParam(r, "deck")
	settings, err := h.study.PutSettings(r.Context(), userID, deck,
		domain.Settings{NewItemsPerDay: req.NewItemsPerDay})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{
		Deck:           deck,
		NewItemsPerDay: settings.NewItemsPerDay,
	})
}
