package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/indexes"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:         "  Ada   Lovelace ",
		Email:        "  Ada@Example.COM ",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Ada Lovelace" {
		t.Errorf("Name: got %q", created.Name)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("Email: got %q", created.Email)
	}
	if created.Role != models.RoleUser {
		t.Errorf("Role: got %q, want %q", created.Role, models.RoleUser)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail returned %v, want %v", got.ID, created.ID)
	}
}

func TestStore_Create_BadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "X", Email: "x@example.com", Role: "superuser"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := userstore.New(db)

	if _, err := store.Create(ctx, models.User{Name: "A", Email: "dup@example.com"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{Name: "B", Email: "DUP@example.com"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, userstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateMember(ctx, "Old Name", "old@example.com")

	got, err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{
		Name:          "New Name",
		Email:         "New@Example.com",
		ContactNumber: " 555-0100 ",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if got.Name != "New Name" || got.Email != "new@example.com" || got.ContactNumber != "555-0100" {
		t.Errorf("unexpected profile: %+v", got)
	}

	// Blank name/email keep the stored values.
	got, err = store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if got.Name != "New Name" || got.Email != "new@example.com" {
		t.Errorf("blank update changed profile: %+v", got)
	}

	if _, err := store.UpdateProfile(ctx, primitive.NewObjectID(), userstore.ProfileUpdate{Name: "x"}); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListDeleteAndNames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b := fixtures.CreateMember(ctx, "Bob", "bob@example.com")
	a := fixtures.CreateMember(ctx, "alice", "alice@example.com")

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 || users[0].ID != a.ID || users[1].ID != b.ID {
		t.Fatalf("List order wrong: %+v", users)
	}

	names, err := store.NamesByIDs(ctx, []primitive.ObjectID{a.ID, b.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("NamesByIDs failed: %v", err)
	}
	if len(names) != 2 || names[a.ID] != "alice" || names[b.ID] != "Bob" {
		t.Errorf("unexpected names: %v", names)
	}

	n, err := store.Delete(ctx, a.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	n, err = store.Delete(ctx, a.ID)
	if err != nil || n != 0 {
		t.Fatalf("second Delete: n=%d err=%v", n, err)
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateAdmin(ctx, "Root", "root@example.com")
	f := userstore.NewFetcher(db)

	su, err := f.FetchUser(ctx, u.ID.Hex())
	if err != nil {
		t.Fatalf("FetchUser failed: %v", err)
	}
	if su.ID != u.ID.Hex() || su.Role != models.RoleAdmin || su.Email != "root@example.com" {
		t.Errorf("unexpected session user: %+v", su)
	}

	if _, err := f.FetchUser(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for missing user, got %v", err)
	}
	if _, err := f.FetchUser(ctx, "not-an-id"); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for malformed id, got %v", err)
	}
}

func TestStore_SetRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{Name: "Grace", Email: "grace@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("Role: got %q, want %q", got.Role, models.RoleAdmin)
	}

	if err := store.SetRole(ctx, u.ID, "owner"); err == nil {
		t.Error("expected error for unknown role")
	}
	if err := store.SetRole(ctx, primitive.NewObjectID(), models.RoleUser); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("missing user: got %v, want ErrNotFound", err)
	}
}
