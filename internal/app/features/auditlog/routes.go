// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log under /admin/audit. Admins only.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireRole(models.RoleAdmin))

	r.Get("/", h.ServeList)
	r.Get("/event-types", h.ServeEventTypes)
	r.Get("/failed-logins", h.ServeFailedLogins)

	return r
}
