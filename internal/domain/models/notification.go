// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification delivery outcomes.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// Notification records one admin email broadcast to a group's members.
type Notification struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	GroupID    primitive.ObjectID   `bson:"group_id" json:"groupId"`
	Subject    string               `bson:"subject" json:"subject"`
	Body       string               `bson:"body" json:"message"`
	SentBy     primitive.ObjectID   `bson:"sent_by" json:"sentBy"`
	Recipients []primitive.ObjectID `bson:"recipients" json:"recipients"`
	SentAt     time.Time            `bson:"sent_at" json:"sentAt"`
	Status     string               `bson:"status" json:"status"` // sent | failed
}
