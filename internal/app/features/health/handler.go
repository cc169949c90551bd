// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is anything that can report its own reachability, such as the
// attachment file store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler checks MongoDB and, when configured, attachment storage.
type Handler struct {
	Client  *mongo.Client
	Storage Pinger
	Log     *zap.Logger
}

func NewHandler(client *mongo.Client, storage Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Storage: storage,
		Log:     logger,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Storage  string `json:"storage,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Serve handles GET /health. It answers 200 with status "ok" when every
// dependency responds, and 503 with status "error" otherwise.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{Status: "ok", Database: "connected"}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
	}

	if h.Storage != nil {
		resp.Storage = "available"
		if err := h.Storage.Ping(ctx); err != nil {
			h.Log.Error("health-check: storage ping failed", zap.Error(err))
			resp.Storage = "unavailable"
			if resp.Status == "ok" {
				resp.Message = "Storage unavailable"
			}
			resp.Status = "error"
		}
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	apierrors.WriteJSON(w, code, resp)
}
