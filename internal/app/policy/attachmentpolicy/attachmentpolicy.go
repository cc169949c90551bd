// Package attachmentpolicy decides who may upload, view and delete group
// attachments.
//
// Authorization rules:
//   - Upload: members of the group
//   - View and download: any caller, including unauthenticated ones; only
//     the group must exist
//   - Delete: the uploader, or the group's creator
//
// The admin role grants nothing here. Admins moderate groups, not the files
// inside them; an admin who must remove an attachment deletes the group.
package attachmentpolicy

import (
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanUpload reports whether userID may add an attachment to g.
func CanUpload(g *models.Group, userID primitive.ObjectID) bool {
	if g == nil || userID.IsZero() {
		return false
	}
	return g.HasMember(userID)
}

// CanDelete reports whether userID may remove a from g.
func CanDelete(g *models.Group, a models.Attachment, userID primitive.ObjectID) bool {
	if g == nil || userID.IsZero() {
		return false
	}
	return a.UploadedBy == userID || g.CreatorID == userID
}
