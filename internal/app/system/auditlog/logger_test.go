package auditlog_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/studyhub/internal/app/store/audit"
	"github.com/dalemusser/studyhub/internal/app/system/auditlog"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Record(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, primitive.NewObjectID(), "a@example.com")
	logger.GroupDeleted(ctx, req, primitive.NewObjectID(), primitive.NewObjectID(), "admin", "Algebra")
}

func TestLogger_Destinations(t *testing.T) {
	tests := []struct {
		name    string
		cfg     auditlog.Config
		wantDB  int
		wantCat string
	}{
		{"off", auditlog.Config{Auth: auditlog.Off, Admin: auditlog.Off}, 0, audit.CategoryAuth},
		{"log only", auditlog.Config{Auth: auditlog.Log, Admin: auditlog.Log}, 0, audit.CategoryAuth},
		{"db", auditlog.Config{Auth: auditlog.DB, Admin: auditlog.Off}, 1, audit.CategoryAuth},
		{"all", auditlog.Config{Auth: auditlog.All, Admin: auditlog.All}, 1, audit.CategoryAuth},
		{"admin off keeps auth", auditlog.Config{Auth: auditlog.All, Admin: auditlog.Off}, 0, audit.CategoryAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			store := audit.New(db)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			logger := auditlog.New(store, zap.NewNop(), tt.cfg)
			logger.Record(ctx, audit.Event{Category: tt.wantCat, EventType: "sample", Success: true})

			n, err := store.Count(ctx, audit.QueryFilter{})
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if int(n) != tt.wantDB {
				t.Errorf("stored events: got %d, want %d", n, tt.wantDB)
			}
		})
	}
}

func TestLogger_LoginEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: auditlog.DB, Admin: auditlog.DB})

	req := httptest.NewRequest("POST", "/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "TestBrowser/1.0")

	userID := primitive.NewObjectID()
	logger.LoginSuccess(ctx, req, userID, "ada@example.com")
	logger.LoginFailedWrongPassword(ctx, req, userID, "ada@example.com")
	logger.LoginFailedUserNotFound(ctx, req, "nobody@example.com")

	events, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAuth})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for _, e := range events {
		if e.IP != "203.0.113.7" {
			t.Errorf("%s: IP got %q", e.EventType, e.IP)
		}
		if e.UserAgent != "TestBrowser/1.0" {
			t.Errorf("%s: UserAgent got %q", e.EventType, e.UserAgent)
		}
	}

	failed, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventLoginFailedUserNotFound})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Success || failed[0].Details["attempted_email"] != "nobody@example.com" {
		t.Errorf("unexpected failed-login record: %+v", failed)
	}
}

func TestLogger_AdminEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: auditlog.Off, Admin: auditlog.DB})
	req := httptest.NewRequest("PUT", "/", nil)

	actor := primitive.NewObjectID()
	group := primitive.NewObjectID()
	logger.GroupApproved(ctx, req, actor, group, "Algebra")
	logger.NotificationSent(ctx, req, actor, group, 0, errors.New("smtp down"))

	events, err := store.Query(ctx, audit.QueryFilter{GroupID: &group})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	sent := events[0]
	if sent.EventType != audit.EventNotificationSent {
		t.Fatalf("newest event: got %q", sent.EventType)
	}
	if sent.Success || sent.FailureReason != "smtp down" {
		t.Errorf("failed broadcast recorded as %+v", sent)
	}
	if sent.ActorID == nil || *sent.ActorID != actor {
		t.Error("actor not recorded")
	}
}

func TestConfig_Valid(t *testing.T) {
	if !(auditlog.Config{Auth: "all", Admin: "off"}).Valid() {
		t.Error("all/off should be valid")
	}
	if (auditlog.Config{Auth: "everything", Admin: "db"}).Valid() {
		t.Error("unknown destination accepted")
	}
}
