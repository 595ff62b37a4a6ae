// Package adminapi is the operator-facing HTTP surface from SPEC_FULL.md
// §4.9: job introspection and manual lock release/deletion behind a bearer
// token, built the way the teacher builds its HTTP layer (chi router, chi
// middleware stack, a JWT-gated route group).
package adminapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"jobres/internal/auth"
	"jobres/internal/config"
	"jobres/internal/jobs"
)

// NewRouter wires the admin HTTP surface: health check, login, and the
// JWT-gated /admin/jobs routes.
func NewRouter(cfg config.Config, db *gorm.DB, store *jobs.Store, jwtSvc *auth.JWT) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(corsMiddleware(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &authHandler{db: db, jwt: jwtSvc}
	r.Post("/admin/login", ah.Login)

	jh := &jobsHandler{store: store}
	r.Route("/admin/jobs", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/", jh.List)
		r.Get("/{id}", jh.Get)
		r.Post("/{id}/unlock", jh.Unlock)
		r.Delete("/{id}", jh.Delete)
	})

	return r
}
