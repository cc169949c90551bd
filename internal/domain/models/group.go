// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group statuses. Only approved groups appear in public listings.
const (
	GroupPending  = "pending"
	GroupApproved = "approved"
	GroupRejected = "rejected"
)

// Group is a study group.
//
// NOTE:
//   - CreatorID is always present in Members.
//   - Attachments is the group's ledger of uploaded files, in upload order.
//   - Version is bumped on every ledger mutation; writers use it for
//     conditional updates so concurrent uploads cannot drop each other.
type Group struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Subject     string               `bson:"subject" json:"subject"`
	Description string               `bson:"description" json:"description"`
	CreatorID   primitive.ObjectID   `bson:"creator_id" json:"creatorId"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Status      string               `bson:"status" json:"status"`
	Attachments []Attachment         `bson:"attachments" json:"-"`
	Version     int64                `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasMember reports whether userID is in the member set.
func (g Group) HasMember(userID primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// Attachment returns the ledger entry with the given ID.
func (g Group) Attachment(id primitive.ObjectID) (Attachment, bool) {
	for _, a := range g.Attachments {
		if a.ID == id {
			return a, true
		}
	}
	return Attachment{}, false
}
