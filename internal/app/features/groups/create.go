// internal/app/features/groups/create.go
package groups

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
)

// groupInput is the JSON body of create and update requests.
type groupInput struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// clean strips markup from every field; group text is plain.
func (in groupInput) clean() groupInput {
	return groupInput{
		Title:       strings.TrimSpace(htmlsanitize.StripTags(in.Title)),
		Subject:     strings.TrimSpace(htmlsanitize.StripTags(in.Subject)),
		Description: strings.TrimSpace(htmlsanitize.StripTags(in.Description)),
	}
}

type createResponse struct {
	Message string       `json:"message"`
	Group   models.Group `json:"group"`
}

// HandleCreate handles POST /groups. The new group is pending until an
// admin approves it; its creator is its first member.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w, "No token provided")
		return
	}

	var in groupInput
	if !apierrors.DecodeJSON(w, r, &in) {
		return
	}
	in = in.clean()
	if in.Title == "" || in.Subject == "" {
		apierrors.BadRequest(w, "Title and subject are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := groupstore.New(h.DB).Create(ctx, models.Group{
		Title:       in.Title,
		Subject:     in.Subject,
		Description: in.Description,
		CreatorID:   uid,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to create group", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusCreated, createResponse{
		Message: "Group created successfully",
		Group:   g,
	})
}
