// internal/app/features/groupfiles/routes.go
package groupfiles

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /groups/{groupId}/files.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{fileId}", h.ServeFile)
	r.Get("/{fileId}/download", h.ServeDownload)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)
		pr.Post("/", h.HandleUpload)
		pr.Delete("/{fileId}", h.HandleDelete)
	})

	return r
}
