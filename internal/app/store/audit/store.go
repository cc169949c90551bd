// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Auth event types
const (
	EventUserRegistered           = "user_registered"
	EventLoginSuccess             = "login_success"
	EventLoginFailedUserNotFound  = "login_failed_user_not_found"
	EventLoginFailedWrongPassword = "login_failed_wrong_password"
	EventProfileUpdated           = "profile_updated"
)

// Admin event types
const (
	EventGroupApproved    = "group_approved"
	EventGroupRejected    = "group_rejected"
	EventGroupDeleted     = "group_deleted"
	EventUserDeleted      = "user_deleted"
	EventNotificationSent = "notification_sent"
)

// DefaultLimit caps Query when the filter does not set a limit.
const DefaultLimit = 100

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	// Event classification
	Category  string `bson:"category" json:"category"`
	EventType string `bson:"event_type" json:"eventType"`

	// Who
	UserID  *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`   // affected user
	ActorID *primitive.ObjectID `bson:"actor_id,omitempty" json:"actorId,omitempty"` // who performed the action
	GroupID *primitive.ObjectID `bson:"group_id,omitempty" json:"groupId,omitempty"`

	// Context
	IP        string `bson:"ip" json:"ip"`
	UserAgent string `bson:"user_agent,omitempty" json:"userAgent,omitempty"`

	// Outcome
	Success       bool   `bson:"success" json:"success"`
	FailureReason string `bson:"failure_reason,omitempty" json:"failureReason,omitempty"`

	Details map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	UserID    *primitive.ObjectID
	GroupID   *primitive.ObjectID
	Category  string
	EventType string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
	Offset    int64
}

func (f QueryFilter) toBSON() bson.M {
	query := bson.M{}
	if f.UserID != nil {
		query["user_id"] = *f.UserID
	}
	if f.GroupID != nil {
		query["group_id"] = *f.GroupID
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.EventType != "" {
		query["event_type"] = f.EventType
	}
	if f.StartTime != nil || f.EndTime != nil {
		window := bson.M{}
		if f.StartTime != nil {
			window["$gte"] = *f.StartTime
		}
		if f.EndTime != nil {
			window["$lte"] = *f.EndTime
		}
		query["timestamp"] = window
	}
	return query
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// EnsureIndexes creates the indexes Query relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_ts_desc"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_user_ts"),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_group_ts"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_cat_type_ts"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, models)
	return err
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Query retrieves audit events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cur, err := s.c.Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the number of events matching the filter. Limit and Offset
// are ignored.
func (s *Store) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, filter.toBSON())
}

// FailedLogins retrieves failed login attempts since the given time.
func (s *Store) FailedLogins(ctx context.Context, since time.Time, limit int64) ([]Event, error) {
	query := bson.M{
		"category": CategoryAuth,
		"success":  false,
		"event_type": bson.M{"$in": bson.A{
			EventLoginFailedUserNotFound,
			EventLoginFailedWrongPassword,
		}},
		"timestamp": bson.M{"$gte": since},
	}

	cur, err := s.c.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteBefore removes events older than cutoff and returns how many were
// removed.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
