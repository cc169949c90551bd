// internal/app/features/messages/send.go
package messages

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/policy/grouppolicy"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	messagestore "github.com/dalemusser/studyhub/internal/app/store/messages"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type sendInput struct {
	Message      string `json:"message"`
	AttachmentID string `json:"attachmentId"`
}

type sendResponse struct {
	Message string      `json:"message"`
	Data    messageView `json:"data"`
}

// HandleSend handles POST /groups/{groupId}/messages. Only members may post.
// An attachmentId must name a file already in the same group.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	gid, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	_, name, uid, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w, "No token provided")
		return
	}

	var in sendInput
	if !apierrors.DecodeJSON(w, r, &in) {
		return
	}
	body := strings.TrimSpace(htmlsanitize.StripTags(in.Message))
	if body == "" {
		apierrors.BadRequest(w, "Message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, gid)
	if errors.Is(err, groupstore.ErrNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to send message", err, zap.String("group_id", gid.Hex()))
		return
	}
	if !grouppolicy.IsMember(r, &g) {
		apierrors.Forbidden(w, "Must be a member to send messages")
		return
	}

	msg := models.Message{GroupID: gid, SenderID: uid, Body: body}
	var file *fileRef
	if aid := strings.TrimSpace(in.AttachmentID); aid != "" {
		oid, err := primitive.ObjectIDFromHex(aid)
		if err != nil {
			apierrors.BadRequest(w, "Attachment not found in this group")
			return
		}
		a, found := g.Attachment(oid)
		if !found {
			apierrors.BadRequest(w, "Attachment not found in this group")
			return
		}
		msg.AttachmentID = &oid
		file = refOf(a)
	}

	msg, err = messagestore.New(h.DB).Create(ctx, msg)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to send message", err, zap.String("group_id", gid.Hex()))
		return
	}

	apierrors.WriteJSON(w, http.StatusCreated, sendResponse{
		Message: "Message sent successfully",
		Data:    newView(msg, name, file),
	})
}
