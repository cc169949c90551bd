package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/passwords"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "secret123"

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user whose password is TestPassword.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	hash, err := passwords.Hash(TestPassword)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin)
}

// CreateMember creates a test user with the regular role.
func (f *Fixtures) CreateMember(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleUser)
}

// CreateGroup creates an approved group owned by creator. The creator and any
// extra members are placed in the member set.
func (f *Fixtures) CreateGroup(ctx context.Context, title string, creator primitive.ObjectID, members ...primitive.ObjectID) models.Group {
	f.t.Helper()
	return f.CreateGroupWithStatus(ctx, title, models.GroupApproved, creator, members...)
}

// CreateGroupWithStatus is CreateGroup with an explicit status.
func (f *Fixtures) CreateGroupWithStatus(ctx context.Context, title, status string, creator primitive.ObjectID, members ...primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Subject:     "Test Subject",
		Description: "Test group description",
		CreatorID:   creator,
		Members:     append([]primitive.ObjectID{creator}, members...),
		Status:      status,
		Attachments: []models.Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateMessage creates a test message in groupID.
func (f *Fixtures) CreateMessage(ctx context.Context, groupID, senderID primitive.ObjectID, body string) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("messages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}
	return msg
}
