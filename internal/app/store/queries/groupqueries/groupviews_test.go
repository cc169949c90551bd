package groupqueries_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestList_ResolvesNames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ada := fixtures.CreateMember(ctx, "Ada", "ada@example.com")
	bob := fixtures.CreateMember(ctx, "Bob", "bob@example.com")
	g := fixtures.CreateGroup(ctx, "Calc", ada.ID, bob.ID)
	fixtures.CreateGroupWithStatus(ctx, "Hidden", models.GroupPending, ada.ID)

	views, err := groupqueries.List(ctx, db, models.GroupApproved)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	v := views[0]
	if v.ID != g.ID || v.Title != "Calc" {
		t.Errorf("unexpected view: %+v", v)
	}
	if v.Creator.ID != ada.ID || v.Creator.Name != "Ada" {
		t.Errorf("creator: %+v", v.Creator)
	}
	names := map[string]bool{}
	for _, m := range v.Members {
		names[m.Name] = true
	}
	if len(v.Members) != 2 || !names["Ada"] || !names["Bob"] {
		t.Errorf("members: %+v", v.Members)
	}

	all, err := groupqueries.List(ctx, db, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("List(all): n=%d err=%v", len(all), err)
	}
}

func TestGet_MissingCreatorAndGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gone := primitive.NewObjectID()
	g := fixtures.CreateGroup(ctx, "Orphan", gone)

	v, err := groupqueries.Get(ctx, db, g.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v.Creator.ID != gone || v.Creator.Name != "" {
		t.Errorf("creator of deleted user: %+v", v.Creator)
	}
	if len(v.Members) != 0 {
		t.Errorf("members of deleted users should be dropped: %+v", v.Members)
	}

	if _, err := groupqueries.Get(ctx, db, primitive.NewObjectID()); !errors.Is(err, groupqueries.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
