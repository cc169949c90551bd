// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/studyhub/internal/app/store/audit"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	"github.com/dalemusser/studyhub/internal/app/system/paging"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type groupRef struct {
	ID    primitive.ObjectID `json:"id"`
	Title string             `json:"title"`
}

// eventView is one audit event with user and group names resolved.
type eventView struct {
	ID            primitive.ObjectID      `json:"id"`
	Timestamp     time.Time               `json:"timestamp"`
	Category      string                  `json:"category"`
	EventType     string                  `json:"eventType"`
	Actor         *groupqueries.PersonRef `json:"actor,omitempty"`
	User          *groupqueries.PersonRef `json:"user,omitempty"`
	Group         *groupRef               `json:"group,omitempty"`
	IP            string                  `json:"ip"`
	Success       bool                    `json:"success"`
	FailureReason string                  `json:"failureReason,omitempty"`
	Details       map[string]string       `json:"details,omitempty"`
}

type listResponse struct {
	Events []eventView  `json:"events"`
	Range  paging.Range `json:"range"`
}

// eventTypes lists the event types recorded in each category.
var eventTypes = map[string][]string{
	audit.CategoryAuth: {
		audit.EventUserRegistered,
		audit.EventLoginSuccess,
		audit.EventLoginFailedUserNotFound,
		audit.EventLoginFailedWrongPassword,
		audit.EventProfileUpdated,
	},
	audit.CategoryAdmin: {
		audit.EventGroupApproved,
		audit.EventGroupRejected,
		audit.EventGroupDeleted,
		audit.EventUserDeleted,
		audit.EventNotificationSent,
	},
}
