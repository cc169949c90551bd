// internal/app/policy/grouppolicy/grouppolicy.go
package grouppolicy

import (
	"net/http"

	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanManageGroup reports whether the current request user can edit or delete g:
// - Admins always can
// - The group's creator can
// - Everyone else cannot
func CanManageGroup(r *http.Request, g *models.Group) bool {
	if g == nil {
		return false
	}
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	return uid == g.CreatorID
}

// IsMember reports whether the current request user belongs to g.
func IsMember(r *http.Request, g *models.Group) bool {
	if g == nil {
		return false
	}
	_, _, uid, ok := authz.UserCtx(r)
	return ok && uid != primitive.NilObjectID && g.HasMember(uid)
}
