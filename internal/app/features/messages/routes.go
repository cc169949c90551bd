// internal/app/features/messages/routes.go
package messages

import (
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /groups/{groupId}/messages.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.With(tm.RequireSignedIn).Post("/", h.HandleSend)
	return r
}
