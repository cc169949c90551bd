package auditlog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/studyhub/internal/app/features/auditlog"
	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/store/audit"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *auditlog.Handler {
	t.Helper()
	logger := zap.NewNop()
	return auditlog.NewHandler(db, apierrors.NewErrorLogger(logger), logger)
}

func serveList(h *auditlog.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeList_ResolvesNamesAndPages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Root", "root@example.com")
	member := fixtures.CreateMember(ctx, "Ann", "ann@example.com")
	g := fixtures.CreateGroup(ctx, "Algebra", member.ID)

	store := audit.New(db)
	base := time.Now().UTC().Add(-time.Hour)
	for i, e := range []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &member.ID, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventGroupApproved, ActorID: &admin.ID, GroupID: &g.ID, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventUserDeleted, ActorID: &admin.ID, UserID: &member.ID, Success: true},
	} {
		e.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	h := newTestHandler(t, db)

	rec := serveList(h, "/?category=admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	body := testutil.DecodeJSON(t, rec)
	events, _ := body["events"].([]any)
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	newest, _ := events[0].(map[string]any)
	if newest["eventType"] != audit.EventUserDeleted {
		t.Errorf("newest event = %v", newest["eventType"])
	}
	actor, _ := newest["actor"].(map[string]any)
	user, _ := newest["user"].(map[string]any)
	if actor["name"] != "Root" || user["name"] != "Ann" {
		t.Errorf("names not resolved: actor=%v user=%v", actor, user)
	}
	approved, _ := events[1].(map[string]any)
	group, _ := approved["group"].(map[string]any)
	if group["title"] != "Algebra" {
		t.Errorf("group title not resolved: %v", group)
	}

	rec = serveList(h, "/?limit=1&start=2")
	body = testutil.DecodeJSON(t, rec)
	events, _ = body["events"].([]any)
	rng, _ := body["range"].(map[string]any)
	if len(events) != 1 {
		t.Fatalf("paged events = %d, want 1", len(events))
	}
	if rng["total"] != float64(3) || rng["start"] != float64(2) || rng["nextStart"] != float64(3) {
		t.Errorf("range = %v", rng)
	}

	rec = serveList(h, "/?userId="+member.ID.Hex())
	body = testutil.DecodeJSON(t, rec)
	if events, _ := body["events"].([]any); len(events) != 2 {
		t.Errorf("user filter events = %d, want 2", len(events))
	}
}

func TestServeList_DateRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := audit.New(db)
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{day.Add(-time.Minute), day.Add(12 * time.Hour), day.Add(24*time.Hour + time.Minute)} {
		if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Timestamp: ts}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	rec := serveList(newTestHandler(t, db), "/?startDate=2025-03-14&endDate=2025-03-14")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := testutil.DecodeJSON(t, rec)
	if events, _ := body["events"].([]any); len(events) != 1 {
		t.Errorf("events in day = %d, want 1", len(events))
	}
}

func TestServeList_BadFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	for _, target := range []string{
		"/?category=security",
		"/?userId=zzz",
		"/?groupId=123",
		"/?startDate=14-03-2025",
		"/?endDate=yesterday",
	} {
		if rec := serveList(h, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestServeList_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rec := serveList(newTestHandler(t, db), "/?groupId="+primitive.NewObjectID().Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := testutil.DecodeJSON(t, rec)
	events, ok := body["events"].([]any)
	if !ok || len(events) != 0 {
		t.Errorf("events = %v, want empty array", body["events"])
	}
}

func TestServeEventTypes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rec := httptest.NewRecorder()
	newTestHandler(t, db).ServeEventTypes(rec, httptest.NewRequest(http.MethodGet, "/event-types", nil))

	body := testutil.DecodeJSON(t, rec)
	admin, _ := body[audit.CategoryAdmin].([]any)
	if len(admin) == 0 {
		t.Errorf("no admin event types: %v", body)
	}
}

func TestServeFailedLogins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := audit.New(db)
	now := time.Now().UTC()
	for _, e := range []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedUserNotFound, Timestamp: now.Add(-time.Hour)},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, Timestamp: now.Add(-3 * time.Hour)},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true, Timestamp: now.Add(-time.Hour)},
	} {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	h := newTestHandler(t, db)
	tests := []struct {
		target string
		want   int
	}{
		{"/failed-logins", 2},
		{"/failed-logins?hours=2", 1},
		{"/failed-logins?limit=1", 1},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeFailedLogins(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.target, rec.Code)
		}
		body := testutil.DecodeJSON(t, rec)
		if events, _ := body["events"].([]any); len(events) != tt.want {
			t.Errorf("%s: events = %d, want %d", tt.target, len(events), tt.want)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeFailedLogins(rec, httptest.NewRequest(http.MethodGet, "/failed-logins?hours=-1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative hours: status = %d, want 400", rec.Code)
	}
}
