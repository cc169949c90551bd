// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"time"

	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HistoryLimit caps the admin notification history.
const HistoryLimit = 50

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

// Create records a notification. SentAt defaults to now.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = primitive.NewObjectID()
	if n.SentAt.IsZero() {
		n.SentAt = time.Now().UTC()
	}
	if n.Recipients == nil {
		n.Recipients = []primitive.ObjectID{}
	}
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// Recent returns the latest HistoryLimit notifications, newest first.
func (s *Store) Recent(ctx context.Context) ([]models.Notification, error) {
	return s.find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(HistoryLimit))
}

// ListByGroup returns a group's notifications, newest first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Notification, error) {
	return s.find(ctx, bson.M{"group_id": groupID}, options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}}))
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
