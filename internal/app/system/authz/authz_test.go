package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	role, name, id, ok := authz.UserCtx(httptest.NewRequest("GET", "/", nil))
	if ok || role != authz.Anonymous || name != "" || id != primitive.NilObjectID {
		t.Errorf("unexpected result: %q %q %v %v", role, name, id, ok)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "admin", Role: "admin"})
	if _, _, _, ok := authz.UserCtx(r); ok {
		t.Error("expected malformed id to fail closed")
	}
	if authz.IsAdmin(r) {
		t.Error("expected IsAdmin false for malformed id")
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	oid := primitive.NewObjectID()
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: oid.Hex(), Name: "Ann", Role: "Admin"})

	role, name, id, ok := authz.UserCtx(r)
	if !ok || role != "admin" || name != "Ann" || id != oid {
		t.Errorf("unexpected result: %q %q %v %v", role, name, id, ok)
	}
	if !authz.IsAdmin(r) {
		t.Error("expected IsAdmin true")
	}
}
