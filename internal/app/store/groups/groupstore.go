// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
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

var (
	// ErrNotFound is returned when no group matches.
	ErrNotFound = errors.New("group not found")
	// ErrVersionConflict is returned by conditional writes when the group
	// changed since it was read.
	ErrVersionConflict = errors.New("group was modified concurrently")
	errBadStatus       = errors.New(`status must be "pending"|"approved"|"rejected"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// Create inserts a new pending group. The creator is made its first member.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.Title = normalize.Name(g.Title)
	g.Subject = normalize.Name(g.Subject)
	g.Description = normalize.Text(g.Description)
	g.Members = []primitive.ObjectID{g.CreatorID}
	g.Status = models.GroupPending
	g.Attachments = []models.Attachment{}
	g.Version = 0
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// List returns groups newest first. An empty status lists every group.
func (s *Store) List(ctx context.Context, status string) ([]models.Group, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InfoUpdate holds the editable descriptive fields of a group.
type InfoUpdate struct {
	Title       string
	Subject     string
	Description string
}

// UpdateInfo replaces the descriptive fields and returns the updated group.
// Blank title or subject leave the stored value untouched; description can
// be cleared.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, upd InfoUpdate) (models.Group, error) {
	set := bson.M{
		"description": normalize.Text(upd.Description),
		"updated_at":  time.Now().UTC(),
	}
	if t := normalize.Name(upd.Title); t != "" {
		set["title"] = t
	}
	if sub := normalize.Name(upd.Subject); sub != "" {
		set["subject"] = sub
	}
	return s.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// SetStatus moves a group to pending, approved or rejected.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Group, error) {
	switch status {
	case models.GroupPending, models.GroupApproved, models.GroupRejected:
	default:
		return models.Group{}, errBadStatus
	}
	return s.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
}

// Delete removes a group and returns the document as it was, so callers can
// clean up what it referenced.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// AddMember adds userID to the member set and bumps the version so an
// attachment commit read before the change is retried. It reports false when
// the user was already a member.
func (s *Store) AddMember(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "members": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"members": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
			"$inc":  bson.M{"version": 1},
		},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	return false, s.exists(ctx, id)
}

// RemoveMember removes userID from the member set and bumps the version.
// The creator is never removed. It reports false when nothing was removed.
func (s *Store) RemoveMember(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "members": userID, "creator_id": bson.M{"$ne": userID}},
		bson.M{
			"$pull": bson.M{"members": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
			"$inc":  bson.M{"version": 1},
		},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}
	return false, s.exists(ctx, id)
}

// RemoveMemberEverywhere pulls userID from every group it joined but did not
// create. Returns the number of groups changed.
func (s *Store) RemoveMemberEverywhere(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"members": userID, "creator_id": bson.M{"$ne": userID}},
		bson.M{
			"$pull": bson.M{"members": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
			"$inc":  bson.M{"version": 1},
		},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// TitlesByIDs maps each existing group in ids to its title.
func (s *Store) TitlesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "title": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Title string             `bson:"title"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.ID] = row.Title
	}
	return out, cur.Err()
}

/* -------------------------------------------------------------------------- */
/* Attachment ledger                                                           */
/* -------------------------------------------------------------------------- */

// AppendAttachment adds a to the ledger of the group, provided the group is
// still at version. On success the group's version is incremented.
func (s *Store) AppendAttachment(ctx context.Context, id primitive.ObjectID, version int64, a models.Attachment) error {
	return s.casUpdate(ctx, id, version, bson.M{
		"$push": bson.M{"attachments": a},
		"$inc":  bson.M{"version": 1},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

// RemoveAttachment drops the ledger entry attachmentID, provided the group
// is still at version. On success the group's version is incremented.
func (s *Store) RemoveAttachment(ctx context.Context, id primitive.ObjectID, version int64, attachmentID primitive.ObjectID) error {
	return s.casUpdate(ctx, id, version, bson.M{
		"$pull": bson.M{"attachments": bson.M{"_id": attachmentID}},
		"$inc":  bson.M{"version": 1},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (s *Store) casUpdate(ctx context.Context, id primitive.ObjectID, version int64, update bson.M) error {
	// Groups written before versioning have no version field; treat it as 0.
	filter := bson.M{"_id": id, "version": version}
	if version == 0 {
		filter = bson.M{"_id": id, "$or": bson.A{
			bson.M{"version": 0},
			bson.M{"version": bson.M{"$exists": false}},
		}}
	}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 1 {
		return nil
	}
	if err := s.exists(ctx, id); err != nil {
		return err
	}
	return ErrVersionConflict
}

func (s *Store) findAndUpdate(ctx context.Context, filter, update bson.M) (models.Group, error) {
	var g models.Group
	err := s.c.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// exists returns ErrNotFound when id does not name a group.
func (s *Store) exists(ctx context.Context, id primitive.ObjectID) error {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
