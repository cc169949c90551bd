// internal/app/features/account/routes.go
package account

import (
	"net/http"

	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes registers /register, /login and /profile. throttle wraps the two
// unauthenticated endpoints.
func Routes(h *Handler, tm *auth.TokenManager, throttle func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(throttle).Post("/register", h.HandleRegister)
	r.With(throttle).Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)
		pr.Get("/profile", h.ServeProfile)
		pr.Put("/profile", h.HandleUpdateProfile)
	})

	return r
}
