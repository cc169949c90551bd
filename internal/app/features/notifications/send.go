// internal/app/features/notifications/send.go
package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	notificationstore "github.com/dalemusser/studyhub/internal/app/store/notifications"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studyhub/internal/app/system/mailer"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type sendInput struct {
	GroupID string `json:"groupId"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type sendResponse struct {
	Message        string             `json:"message"`
	NotificationID primitive.ObjectID `json:"notificationId"`
	RecipientCount int                `json:"recipientCount"`
}

// HandleSend handles POST /notifications/send-group-notification. Every
// member of the group is emailed; the outcome is recorded either way.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	_, _, adminID, _ := authz.UserCtx(r)

	var in sendInput
	if !apierrors.DecodeJSON(w, r, &in) {
		return
	}
	subject := strings.Join(strings.Fields(htmlsanitize.StripTags(in.Subject)), " ")
	body := strings.TrimSpace(htmlsanitize.StripTags(in.Message))
	if strings.TrimSpace(in.GroupID) == "" || subject == "" || body == "" {
		apierrors.BadRequest(w, "Group ID, subject, and message are required")
		return
	}
	gid, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.GroupID))
	if err != nil {
		apierrors.NotFound(w, "Group not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, gid)
	if errors.Is(err, groupstore.ErrNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to send notification", err, zap.String("group_id", gid.Hex()))
		return
	}

	contacts, err := userstore.New(h.DB).ContactsByIDs(ctx, g.Members)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to send notification", err, zap.String("group_id", gid.Hex()))
		return
	}
	if len(contacts) == 0 {
		apierrors.BadRequest(w, "No members in this group to notify")
		return
	}

	tmpl := mailer.BuildGroupNotification(mailer.GroupNotificationData{
		GroupTitle: g.Title,
		Subject:    subject,
		Message:    body,
	})
	emails := make([]mailer.Email, 0, len(contacts))
	recipients := make([]primitive.ObjectID, 0, len(contacts))
	for _, c := range contacts {
		e := tmpl
		e.To = c.Email
		emails = append(emails, e)
		recipients = append(recipients, c.ID)
	}

	record := models.Notification{
		GroupID: gid,
		Subject: subject,
		Body:    body,
		SentBy:  adminID,
	}
	notes := notificationstore.New(h.DB)

	if err := mailer.SendAll(ctx, h.Mailer, emails, sendConcurrency); err != nil {
		h.Audit.NotificationSent(ctx, r, adminID, gid, 0, err)
		record.Status = models.NotificationFailed
		if _, recErr := notes.Create(context.WithoutCancel(ctx), record); recErr != nil {
			h.Log.Warn("failed to record failed notification",
				zap.String("group_id", gid.Hex()), zap.Error(recErr))
		}
		h.ErrLog.LogServerError(w, r, "Failed to send notification", err, zap.String("group_id", gid.Hex()))
		return
	}

	h.Audit.NotificationSent(ctx, r, adminID, gid, len(recipients), nil)

	record.Status = models.NotificationSent
	record.Recipients = recipients
	saved, err := notes.Create(ctx, record)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Notification sent but could not be recorded", err, zap.String("group_id", gid.Hex()))
		return
	}

	h.Log.Info("group notification sent",
		zap.String("group_id", gid.Hex()),
		zap.Int("recipients", len(recipients)))
	apierrors.WriteJSON(w, http.StatusOK, sendResponse{
		Message:        fmt.Sprintf("Notification sent successfully to %d members", len(recipients)),
		NotificationID: saved.ID,
		RecipientCount: len(recipients),
	})
}
