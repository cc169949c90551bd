package notificationstore_test

import (
	"testing"
	"time"

	notificationstore "github.com/dalemusser/studyhub/internal/app/store/notifications"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_RecentIsCappedAndNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := primitive.NewObjectID()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < notificationstore.HistoryLimit+5; i++ {
		_, err := store.Create(ctx, models.Notification{
			GroupID: group,
			Subject: "s",
			Body:    "b",
			SentAt:  base.Add(time.Duration(i) * time.Second),
			Status:  models.NotificationSent,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	recent, err := store.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != notificationstore.HistoryLimit {
		t.Fatalf("got %d, want %d", len(recent), notificationstore.HistoryLimit)
	}
	if !recent[0].SentAt.After(recent[1].SentAt) {
		t.Error("expected newest first")
	}
}

func TestStore_ListByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Notification{GroupID: a, Status: models.NotificationSent}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, models.Notification{GroupID: b, Status: models.NotificationFailed}); err != nil {
		t.Fatal(err)
	}

	got, err := store.ListByGroup(ctx, a)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(got) != 1 || got[0].GroupID != a {
		t.Fatalf("unexpected result: %+v", got)
	}
}
