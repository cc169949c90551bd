package workers_test

import (
	"testing"
	"time"

	"github.com/dalemusser/studyhub/internal/app/store/audit"
	"github.com/dalemusser/studyhub/internal/app/system/workers"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.uber.org/zap"
)

func TestAuditRetention_Sweep(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	for _, ts := range []time.Time{now.Add(-100 * 24 * time.Hour), now.Add(-time.Hour)} {
		if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Timestamp: ts}); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	w := workers.NewAuditRetention(store, zap.NewNop(), time.Hour, 90*24*time.Hour)
	if n := w.Sweep(); n != 1 {
		t.Errorf("first sweep removed %d, want 1", n)
	}
	if n := w.Sweep(); n != 0 {
		t.Errorf("second sweep removed %d, want 0", n)
	}

	left, err := store.Count(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if left != 1 {
		t.Errorf("remaining = %d, want 1", left)
	}
}

func TestAuditRetention_StartStop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	w := workers.NewAuditRetention(audit.New(db), zap.NewNop(), time.Hour, 24*time.Hour)
	w.Start()
	w.Stop()
	w.Stop()
}
