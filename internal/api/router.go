package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/scry-study/internal/api/middleware"
	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/clock"
)

// RouterDeps groups what NewRouter needs.
type RouterDeps struct {
	Auth   *AuthHandler
	Study  *StudyHandler
	Authn  *middleware.AuthMiddleware
	Clock  clock.Clock
	Logger *slog.Logger
}

// NewRouter assembles the HTTP routes.
//
//	GET    /health
//	POST   /api/auth/register
//	POST   /api/auth/login
//	GET    /api/decks
//	GET    /api/decks/{deck}/{direction}/summary
//	POST   /api/decks/{deck}/{direction}/sessions
//	GET    /api/decks/{deck}/settings
//	PUT    /api/decks/{deck}/settings
//	GET    /api/sessions/{id}
//	POST   /api/sessions/{id}/answer
//	GET    /api/sessions/{id}/intervals
//	DELETE /api/sessions/{id}
func NewRouter(deps RouterDeps) http.Handler {
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewTraceMiddleware(deps.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithJSON(w, req, http.StatusOK, HealthResponse{Status: "ok", Time: clk.Now()})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", deps.Auth.Register)
		r.Post("/auth/login", deps.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(deps.Authn.Authenticate)

			r.Get("/decks", deps.Study.ListDecks)
			r.Get("/decks/{deck}/settings", deps.Study.GetSettings)
			r.Put("/decks/{deck}/settings", deps.Study.PutSettings)
			r.Get("/decks/{deck}/{direction}/summary", deps.Study.Summary)
			r.Post("/decks/{deck}/{direction}/sessions", deps.Study.StartSession)

			r.Get("/sessions/{id}", deps.Study.GetSession)
			r.Delete("/sessions/{id}", deps.Study.EndSession)
			r.Post("/sessions/{id}/answer", deps.Study.Answer)
			r.Get("/sessions/{id}/intervals", deps.Study.Intervals)
		})
	})

	return r
}
