// internal/app/features/notifications/history.go
package notifications

import (
	"context"
	"net/http"
	"time"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	notificationstore "github.com/dalemusser/studyhub/internal/app/store/notifications"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type groupRef struct {
	ID    primitive.ObjectID `json:"id"`
	Title string             `json:"title"`
}

type recipientRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

type notificationView struct {
	ID         primitive.ObjectID     `json:"id"`
	Group      groupRef               `json:"group"`
	Subject    string                 `json:"subject"`
	Message    string                 `json:"message"`
	SentBy     groupqueries.PersonRef `json:"sentBy"`
	Recipients []recipientRef         `json:"recipients"`
	SentAt     time.Time              `json:"sentAt"`
	Status     string                 `json:"status"`
}

// ServeHistory handles GET /notifications/history: the latest broadcasts.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := notificationstore.New(h.DB).Recent(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Error fetching notification history", err)
		return
	}
	h.writeViews(ctx, w, r, list)
}

// ServeGroup handles GET /notifications/group/{groupId}.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	gid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupId"))
	if err != nil {
		apierrors.NotFound(w, "Group not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := notificationstore.New(h.DB).ListByGroup(ctx, gid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Error fetching group notifications", err, zap.String("group_id", gid.Hex()))
		return
	}
	h.writeViews(ctx, w, r, list)
}

// writeViews resolves group titles and people, then writes the list.
// Deleted groups and users resolve to empty names.
func (h *Handler) writeViews(ctx context.Context, w http.ResponseWriter, r *http.Request, list []models.Notification) {
	groupIDs := make([]primitive.ObjectID, 0, len(list))
	var userIDs []primitive.ObjectID
	for _, n := range list {
		groupIDs = append(groupIDs, n.GroupID)
		userIDs = append(userIDs, n.SentBy)
		userIDs = append(userIDs, n.Recipients...)
	}

	titles, err := groupstore.New(h.DB).TitlesByIDs(ctx, groupIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Error fetching notifications", err)
		return
	}
	contacts, err := userstore.New(h.DB).ContactsByIDs(ctx, userIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Error fetching notifications", err)
		return
	}
	people := make(map[primitive.ObjectID]userstore.Contact, len(contacts))
	for _, c := range contacts {
		people[c.ID] = c
	}

	out := make([]notificationView, 0, len(list))
	for _, n := range list {
		v := notificationView{
			ID:         n.ID,
			Group:      groupRef{ID: n.GroupID, Title: titles[n.GroupID]},
			Subject:    n.Subject,
			Message:    n.Body,
			SentBy:     groupqueries.PersonRef{ID: n.SentBy, Name: people[n.SentBy].Name},
			Recipients: make([]recipientRef, 0, len(n.Recipients)),
			SentAt:     n.SentAt,
			Status:     n.Status,
		}
		for _, id := range n.Recipients {
			c := people[id]
			v.Recipients = append(v.Recipients, recipientRef{ID: id, Name: c.Name, Email: c.Email})
		}
		out = append(out, v)
	}
	apierrors.WriteJSON(w, http.StatusOK, out)
}
