// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/notifications (admin only).
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireRole(models.RoleAdmin))

	r.Post("/send-group-notification", h.HandleSend)
	r.Get("/history", h.ServeHistory)
	r.Get("/group/{groupId}", h.ServeGroup)

	return r
}
