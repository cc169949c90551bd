// internal/app/features/messages/list.go
package messages

import (
	"context"
	"errors"
	"net/http"
	"time"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	messagestore "github.com/dalemusser/studyhub/internal/app/store/messages"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fileRef is the attachment a message points at, if it is still in the ledger.
type fileRef struct {
	ID           primitive.ObjectID `json:"id"`
	OriginalName string             `json:"originalName"`
	FileURL      string             `json:"fileUrl"`
	MediaType    string             `json:"mimeType"`
}

func refOf(a models.Attachment) *fileRef {
	return &fileRef{ID: a.ID, OriginalName: a.OriginalName, FileURL: a.FileURL, MediaType: a.MediaType}
}

type messageView struct {
	ID         primitive.ObjectID     `json:"id"`
	GroupID    primitive.ObjectID     `json:"groupId"`
	Sender     groupqueries.PersonRef `json:"sender"`
	Message    string                 `json:"message"`
	Attachment *fileRef               `json:"attachment,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

func newView(m models.Message, senderName string, file *fileRef) messageView {
	return messageView{
		ID:         m.ID,
		GroupID:    m.GroupID,
		Sender:     groupqueries.PersonRef{ID: m.SenderID, Name: senderName},
		Message:    m.Body,
		Attachment: file,
		CreatedAt:  m.CreatedAt,
	}
}

// ServeList handles GET /groups/{groupId}/messages, oldest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	gid, ok := groupIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, gid)
	if errors.Is(err, groupstore.ErrNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch messages", err, zap.String("group_id", gid.Hex()))
		return
	}

	msgs, err := messagestore.New(h.DB).ListByGroup(ctx, gid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch messages", err, zap.String("group_id", gid.Hex()))
		return
	}

	senders := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		senders = append(senders, m.SenderID)
	}
	names, err := userstore.New(h.DB).NamesByIDs(ctx, senders)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch messages", err, zap.String("group_id", gid.Hex()))
		return
	}

	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		var file *fileRef
		if m.AttachmentID != nil {
			if a, ok := g.Attachment(*m.AttachmentID); ok {
				file = refOf(a)
			}
		}
		out = append(out, newView(m, names[m.SenderID], file))
	}
	apierrors.WriteJSON(w, http.StatusOK, out)
}
