package auditlog_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/app/features/auditlog"
	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/store/audit"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/testutil"
)

func listQuery(category string) listkit.Query {
	return listkit.NewQuery("", category)
}

func newTestHandler(t *testing.T) (*auditlog.Handler, *audit.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := auditlog.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, h.Store
}

// renderSafe swallows template panics; template sets are not initialized
// in handler tests, so only the side effects are asserted.
func renderSafe(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func seedEvents(t *testing.T, store *audit.Store) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events := []audit.Event{
		{
			Timestamp:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
			Category:   audit.CategoryAuth,
			EventType:  audit.EventLoginSuccess,
			ActorEmail: "root@caristo.example",
			IP:         "10.0.0.1",
			Success:    true,
		},
		{
			Timestamp:  time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
			Category:   audit.CategoryAdmin,
			EventType:  audit.EventEntityUpdated,
			ActorEmail: "root@caristo.example",
			Entity:     "banner",
			EntityID:   "b1",
			IP:         "10.0.0.1",
			Success:    true,
		},
		{
			Timestamp:     time.Date(2026, 8, 20, 8, 30, 0, 0, time.UTC),
			Category:      audit.CategoryAuth,
			EventType:     audit.EventLoginFailedWrongPassword,
			ActorEmail:    "intruder@caristo.example",
			IP:            "10.9.9.9",
			Success:       false,
			FailureReason: "wrong password",
		},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}
}

func TestServeList_ReturnsAllEvents(t *testing.T) {
	h, store := newTestHandler(t)
	seedEvents(t, store)

	req := testutil.NewAuthenticatedRequest("GET", "/audit-log", testutil.SuperAdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.ServeList(rec, req) })

	ctx, cancel := testutil.TestContext()
	defer cancel()
	events, meta, err := store.List(ctx, listQuery(""))
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 3 || meta.Total != 3 {
		t.Fatalf("events = %d (total %d), want 3", len(events), meta.Total)
	}
}

func TestStoreList_FiltersByCategory(t *testing.T) {
	h, store := newTestHandler(t)
	_ = h
	seedEvents(t, store)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	events, _, err := store.List(ctx, listQuery(audit.CategoryAdmin))
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("admin-category events = %d, want 1", len(events))
	}
	if events[0].Entity != "banner" {
		t.Errorf("entity = %q, want banner", events[0].Entity)
	}
}

func TestStoreList_NewestFirst(t *testing.T) {
	h, store := newTestHandler(t)
	_ = h
	seedEvents(t, store)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	events, _, err := store.List(ctx, listQuery(""))
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.After(events[i-1].Timestamp) {
			t.Fatalf("events out of order at %d: %v after %v", i, events[i].Timestamp, events[i-1].Timestamp)
		}
	}
}
