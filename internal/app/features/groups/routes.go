// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /groups. Reads are public; writes need a signed-in user.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGroup)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/leave", h.HandleLeave)
	})

	return r
}
