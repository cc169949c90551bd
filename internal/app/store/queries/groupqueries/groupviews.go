// Package groupqueries provides read-only queries that join groups with the
// names of the people in them.
package groupqueries

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by Get when no group matches.
var ErrNotFound = errors.New("group not found")

// PersonRef is a user reduced to what group listings show.
type PersonRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// GroupView is a group with creator and member names resolved.
type GroupView struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Subject         string             `bson:"subject" json:"subject"`
	Description     string             `bson:"description" json:"description"`
	Status          string             `bson:"status" json:"status"`
	Creator         PersonRef          `bson:"-" json:"creator"`
	Members         []PersonRef        `bson:"members" json:"members"`
	AttachmentCount int                `bson:"attachment_count" json:"fileCount"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`

	CreatorID   primitive.ObjectID `bson:"creator_id" json:"-"`
	CreatorDocs []PersonRef        `bson:"creator_docs" json:"-"`
}

// List returns groups newest first with names resolved. An empty status
// lists every group.
func List(ctx context.Context, db *mongo.Database, status string) ([]GroupView, error) {
	match := bson.M{}
	if status != "" {
		match["status"] = status
	}
	return run(ctx, db, match)
}

// Get returns one group with names resolved.
func Get(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (GroupView, error) {
	views, err := run(ctx, db, bson.M{"_id": id})
	if err != nil {
		return GroupView{}, err
	}
	if len(views) == 0 {
		return GroupView{}, ErrNotFound
	}
	return views[0], nil
}

func run(ctx context.Context, db *mongo.Database, match bson.M) ([]GroupView, error) {
	// Only _id and name of each user leave the lookup.
	refs := func(field string) bson.M {
		return bson.M{"$map": bson.M{
			"input": "$" + field,
			"as":    "u",
			"in":    bson.M{"_id": "$$u._id", "name": "$$u.name"},
		}}
	}

	pipe := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "creator_id",
			"foreignField": "_id",
			"as":           "creator_docs",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "members",
			"foreignField": "_id",
			"as":           "member_docs",
		}}},
		{{Key: "$project", Value: bson.M{
			"title":            1,
			"subject":          1,
			"description":      1,
			"status":           1,
			"creator_id":       1,
			"created_at":       1,
			"updated_at":       1,
			"creator_docs":     refs("creator_docs"),
			"members":          refs("member_docs"),
			"attachment_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$attachments", bson.A{}}}},
		}}},
	}

	cur, err := db.Collection("groups").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []GroupView{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		v := &out[i]
		v.Creator = PersonRef{ID: v.CreatorID}
		if len(v.CreatorDocs) > 0 {
			v.Creator = v.CreatorDocs[0]
		}
		if v.Members == nil {
			v.Members = []PersonRef{}
		}
	}
	return out, nil
}
