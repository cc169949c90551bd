// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureMessages(ctx, db); err != nil {
		problems = append(problems, "messages: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(b *bool) bool {
	return b != nil && *b
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet creates each desired index unless one with the same keys and
// uniqueness already exists. An existing index with the same keys but
// different uniqueness or name is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if isUnique(ex.Unique) == isUnique(unique) && (name == "" || ex.Name == name) {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil {
			if isDuplicateKeyErr(err) && isUnique(unique) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", sig),
				zap.Error(err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", created),
			zap.String("keys", sig),
			zap.Bool("unique", isUnique(unique)),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Admin user list sorts by folded name.
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_nameci__id"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("groups"), []mongo.IndexModel{
		// Public listing (approved) and admin listing by status.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_groups_status_created"),
		},
		// Member lookups (join/leave, removing a deleted user everywhere).
		{
			Keys:    bson.D{{Key: "members", Value: 1}},
			Options: options.Index().SetName("idx_groups_members"),
		},
		{
			Keys:    bson.D{{Key: "creator_id", Value: 1}},
			Options: options.Index().SetName("idx_groups_creator"),
		},
	})
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("messages"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_messages_group_created"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("notifications"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sent_at", Value: -1}},
			Options: options.Index().SetName("idx_notifications_sent"),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "sent_at", Value: -1}},
			Options: options.Index().SetName("idx_notifications_group_sent"),
		},
	})
}
