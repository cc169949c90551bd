// internal/app/features/admin/routes.go
package admin

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /admin. Every route requires the admin role.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireRole(models.RoleAdmin))

	r.Get("/groups", h.ServeGroups)
	r.Put("/groups/{id}/approve", h.HandleApprove)
	r.Put("/groups/{id}/reject", h.HandleReject)
	r.Delete("/groups/{id}", h.HandleDeleteGroup)

	r.Get("/users", h.ServeUsers)
	r.Delete("/users/{id}", h.HandleDeleteUser)

	return r
}
