// internal/app/features/auditlog/failedlogins.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/store/audit"
	"github.com/dalemusser/studyhub/internal/app/system/paging"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

const (
	defaultFailedWindow = 24 * time.Hour
	maxFailedWindow     = 30 * 24 * time.Hour
)

type failedLoginsResponse struct {
	Since  time.Time   `json:"since"`
	Events []eventView `json:"events"`
}

// ServeFailedLogins handles GET /admin/audit/failed-logins?hours=N, the
// most recent failed sign-in attempts within the window (default 24h,
// capped at 30 days).
func (h *Handler) ServeFailedLogins(w http.ResponseWriter, r *http.Request) {
	window := defaultFailedWindow
	if raw := strings.TrimSpace(query.Get(r, "hours")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			apierrors.BadRequest(w, "hours must be a positive integer")
			return
		}
		window = time.Duration(n) * time.Hour
		if window > maxFailedWindow {
			window = maxFailedWindow
		}
	}
	since := time.Now().UTC().Add(-window)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	events, err := audit.New(h.DB).FailedLogins(ctx, since, int64(paging.ParseLimit(r)))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch failed logins", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, failedLoginsResponse{
		Since:  since,
		Events: h.views(ctx, events),
	})
}
