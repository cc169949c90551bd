// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a post in a group's message board. Messages are append-only.
type Message struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	GroupID      primitive.ObjectID  `bson:"group_id" json:"groupId"`
	SenderID     primitive.ObjectID  `bson:"sender_id" json:"senderId"`
	Body         string              `bson:"body" json:"message"`
	AttachmentID *primitive.ObjectID `bson:"attachment_id,omitempty" json:"attachmentId,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
}
