package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/features/services"
	"github.com/caristo/adminhub/internal/app/system/uistate"
	"github.com/caristo/adminhub/internal/testutil"
)

func newTestHandler(t *testing.T, fix *testutil.UpstreamFixture) *services.Handler {
	t.Helper()
	return services.NewHandler(fix.Client(), uierrors.NewErrorLogger(zap.NewNop()), nil, uistate.NewRegistry(), zap.NewNop())
}

func renderSafe(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func TestServeList_FetchesUpstream(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubList("/admin/services", testutil.Services(3))
	h := newTestHandler(t, fix)

	req := testutil.NewAuthenticatedRequest("GET", "/services?q=clean&status=ACTIVE", testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.ServeList(rec, req) })

	reqs := fix.Requests()
	if len(reqs) != 1 {
		t.Fatalf("upstream calls = %d, want 1", len(reqs))
	}
	if reqs[0].Query["search"] != "clean" || reqs[0].Query["status"] != "ACTIVE" {
		t.Errorf("query = %v, want search=clean status=ACTIVE", reqs[0].Query)
	}
}

func TestHandleCreate_PostsPayload(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)

	var mu sync.Mutex
	var payload map[string]any
	fix.Handle("/admin/services", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		json.NewDecoder(r.Body).Decode(&payload)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})

	h := newTestHandler(t, fix)
	req := testutil.NewFormRequest("/services", map[string]string{
		"title":     "Deep Cleaning",
		"category":  "cleaning",
		"price_min": "50",
		"price_max": "120",
		"status":    "active",
	}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleCreate(rec, req) })

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	mu.Lock()
	defer mu.Unlock()
	if payload["title"] != "Deep Cleaning" {
		t.Errorf("title = %v, want Deep Cleaning", payload["title"])
	}
	if payload["price_min"] != float64(50) || payload["price_max"] != float64(120) {
		t.Errorf("price range = %v–%v, want 50–120", payload["price_min"], payload["price_max"])
	}
}

func TestHandleCreate_MissingTitleBlocked(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	h := newTestHandler(t, fix)

	req := testutil.NewFormRequest("/services", map[string]string{
		"title":     "",
		"category":  "cleaning",
		"price_min": "10",
		"price_max": "20",
	}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleCreate(rec, req) })

	if got := fix.RequestCount("POST", "/admin/services"); got != 0 {
		t.Fatalf("upstream create calls = %d, want 0 when validation fails", got)
	}
}

func TestHandleCreate_InvertedPriceRangeBlocked(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	h := newTestHandler(t, fix)

	req := testutil.NewFormRequest("/services", map[string]string{
		"title":     "Deep Cleaning",
		"category":  "cleaning",
		"price_min": "120",
		"price_max": "50",
	}, testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleCreate(rec, req) })

	if got := fix.RequestCount("POST", "/admin/services"); got != 0 {
		t.Fatalf("upstream create calls = %d, want 0 when max < min", got)
	}
}

func TestHandleEdit_PutsToUpstream(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubJSON("/admin/services/s1", http.StatusOK, map[string]any{"service_id": "s1"})

	h := newTestHandler(t, fix)
	req := testutil.NewFormRequest("/services/s1/edit", map[string]string{
		"title":     "Deep Cleaning",
		"category":  "cleaning",
		"price_min": "60",
		"price_max": "130",
		"status":    "inactive",
	}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "s1")
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleEdit(rec, req) })

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := fix.RequestCount("PUT", "/admin/services/s1"); got != 1 {
		t.Fatalf("upstream edit calls = %d, want 1", got)
	}
}

func TestHandleDelete_SingleRequestAndRefetch(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubList("/admin/services", testutil.Services(2))
	fix.Handle("/admin/services/s1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	h := newTestHandler(t, fix)
	user := testutil.AdminUser()

	listReq := testutil.NewAuthenticatedRequest("GET", "/services", user)
	renderSafe(func() { h.ServeList(httptest.NewRecorder(), listReq) })

	del := testutil.NewAuthenticatedRequest("POST", "/services/s1/delete", user)
	del = testutil.WithChiURLParam(del, "id", "s1")
	renderSafe(func() { h.HandleDelete(httptest.NewRecorder(), del) })

	listReq2 := testutil.NewAuthenticatedRequest("GET", "/services", user)
	renderSafe(func() { h.ServeList(httptest.NewRecorder(), listReq2) })

	if got := fix.RequestCount("DELETE", "/admin/services/s1"); got != 1 {
		t.Errorf("upstream delete calls = %d, want 1", got)
	}
	if got := fix.RequestCount("GET", "/admin/services"); got != 2 {
		t.Errorf("upstream list calls = %d, want 2 (delete must invalidate the cache)", got)
	}
}
