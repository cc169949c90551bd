// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/normalize"
	"github.com/dalemusser/studyhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user not found")
	errBadRole  = errors.New(`role must be "admin"|"user"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields. Role defaults to "user".
// PasswordHash must already be set by the caller.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	switch u.Role {
	case models.RoleAdmin, models.RoleUser:
	default:
		return models.User{}, errBadRole
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the fields a user may change on their own profile.
// Empty Name or Email leave the stored value untouched.
type ProfileUpdate struct {
	Name          string
	Email         string
	ContactNumber string
}

// UpdateProfile applies upd and returns the updated user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{
		"updated_at":     time.Now().UTC(),
		"contact_number": normalize.Text(upd.ContactNumber),
	}
	if name := normalize.Name(upd.Name); name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if email := normalize.Email(upd.Email); email != "" {
		set["email"] = email
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// SetRole changes a user's role.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	switch role {
	case models.RoleAdmin, models.RoleUser:
	default:
		return errBadRole
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all users ordered by name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Contact is the subset of a user needed to address an email.
type Contact struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
}

// ContactsByIDs returns name and email for each existing user in ids.
func (s *Store) ContactsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Contact, error) {
	if len(ids) == 0 {
		return []Contact{}, nil
	}
	cur, err := s.c.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Contact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NamesByIDs maps each existing user in ids to their display name.
func (s *Store) NamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	contacts, err := s.ContactsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(contacts))
	for _, c := range contacts {
		names[c.ID] = c.Name
	}
	return names, nil
}
