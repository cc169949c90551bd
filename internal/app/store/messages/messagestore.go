// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/normalize"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("messages")}
}

// Create appends a message to its group's board.
func (s *Store) Create(ctx context.Context, m models.Message) (models.Message, error) {
	m.ID = primitive.NewObjectID()
	m.Body = normalize.Text(m.Body)
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// ListByGroup returns a group's messages, oldest first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Message, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByGroup removes every message of a group.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
