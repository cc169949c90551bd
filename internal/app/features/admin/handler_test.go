package admin_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/studyhub/internal/app/features/admin"
	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/attachments"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/cascade"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/dalemusser/studyhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database) *admin.Handler {
	t.Helper()
	logger := zap.NewNop()
	ledger := attachments.New(groupstore.New(db), testutil.NewFileStore(t, t.TempDir(), 0), logger)
	return admin.NewHandler(db, cascade.New(db, ledger, logger), nil, apierrors.NewErrorLogger(logger), logger)
}

func withID(r *http.Request, id string) *http.Request {
	return testutil.WithChiURLParam(r, "id", id)
}

func TestApproveRejectAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	h := newHandler(t, db)

	ann := fixtures.CreateMember(ctx, "Ann", "ann@example.com")
	p1 := fixtures.CreateGroupWithStatus(ctx, "P1", models.GroupPending, ann.ID)
	p2 := fixtures.CreateGroupWithStatus(ctx, "P2", models.GroupPending, ann.ID)
	adminUser := testutil.AdminUser()

	rec := httptest.NewRecorder()
	h.HandleApprove(rec, withID(testutil.WithUser(testutil.NewRequest(http.MethodPut, "/"), adminUser), p1.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("approve status = %d, want 200", rec.Code)
	}
	if msg := testutil.DecodeJSON(t, rec)["message"]; msg != "Group approved successfully" {
		t.Errorf("approve message = %v", msg)
	}

	rec = httptest.NewRecorder()
	h.HandleReject(rec, withID(testutil.WithUser(testutil.NewRequest(http.MethodPut, "/"), adminUser), p2.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("reject status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleApprove(rec, withID(testutil.NewRequest(http.MethodPut, "/"), ann.ID.Hex()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("approve unknown group status = %d, want 404", rec.Code)
	}

	gs := groupstore.New(db)
	if g, _ := gs.GetByID(ctx, p1.ID); g.Status != models.GroupApproved {
		t.Errorf("p1 status = %q, want approved", g.Status)
	}
	if g, _ := gs.GetByID(ctx, p2.ID); g.Status != models.GroupRejected {
		t.Errorf("p2 status = %q, want rejected", g.Status)
	}

	rec = httptest.NewRecorder()
	h.ServeGroups(rec, testutil.NewRequest(http.MethodGet, "/admin/groups"))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"P1"`) || !strings.Contains(body, `"P2"`) {
		t.Errorf("admin list should include every status: %s", body)
	}
}

func TestDeleteUser_RemovesMembershipKeepsCreatedGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	h := newHandler(t, db)

	ann := fixtures.CreateMember(ctx, "Ann", "ann@example.com")
	bob := fixtures.CreateMember(ctx, "Bob", "bob@example.com")
	joined := fixtures.CreateGroup(ctx, "Joined", ann.ID, bob.ID)
	owned := fixtures.CreateGroup(ctx, "Owned", bob.ID)
	adminUser := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")

	del := func(id string) int {
		req := withID(testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/"), testutil.AsTestUser(adminUser)), id)
		rec := httptest.NewRecorder()
		h.HandleDeleteUser(rec, req)
		return rec.Code
	}

	if code := del(adminUser.ID.Hex()); code != http.StatusBadRequest {
		t.Errorf("self delete status = %d, want 400", code)
	}
	if code := del(bob.ID.Hex()); code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", code)
	}
	if code := del(bob.ID.Hex()); code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", code)
	}

	if _, err := userstore.New(db).GetByID(ctx, bob.ID); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("user should be gone, got %v", err)
	}
	gs := groupstore.New(db)
	if g, _ := gs.GetByID(ctx, joined.ID); g.HasMember(bob.ID) {
		t.Error("deleted user still a member of joined group")
	}
	if _, err := gs.GetByID(ctx, owned.ID); err != nil {
		t.Errorf("group created by deleted user should remain, got %v", err)
	}
}

func TestRoutes_RequireAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	tm, err := auth.NewTokenManager("test-secret-that-is-at-least-32-chars-long", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	r := chi.NewRouter()
	r.Use(tm.LoadSessionUser)
	r.Mount("/admin", admin.Routes(h, tm))

	userToken, _ := tm.Issue(auth.SessionUser{ID: testutil.RegularUser().ID, Role: models.RoleUser})
	adminToken, _ := tm.Issue(auth.SessionUser{ID: testutil.AdminUser().ID, Role: models.RoleAdmin})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"regular user", "Bearer " + userToken, http.StatusForbidden},
		{"admin raw header", adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
}
