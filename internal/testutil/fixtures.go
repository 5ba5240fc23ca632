package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/upstream"
)

// UpstreamFixture is a fake platform API backed by httptest.Server.
// Handlers register canned list pages and mutation responses per path;
// the fixture records every request for assertions.
type UpstreamFixture struct {
	t   *testing.T
	srv *httptest.Server
	mux *http.ServeMux

	mu       sync.Mutex
	requests []RecordedRequest
}

// RecordedRequest captures one request the fixture served.
type RecordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
}

// NewUpstreamFixture starts a fake platform API. The server shuts down
// with the test.
func NewUpstreamFixture(t *testing.T) *UpstreamFixture {
	t.Helper()
	f := &UpstreamFixture{t: t, mux: http.NewServeMux()}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *UpstreamFixture) record(r *http.Request) {
	q := map[string]string{}
	for k := range r.URL.Query() {
		q[k] = r.URL.Query().Get(k)
	}
	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  q,
	})
	f.mu.Unlock()
}

// Client returns an upstream client pointed at the fixture.
func (f *UpstreamFixture) Client() *upstream.Client {
	return upstream.New(f.srv.URL, "fixture-token", zap.NewNop())
}

// URL returns the fixture's base URL.
func (f *UpstreamFixture) URL() string { return f.srv.URL }

// Requests returns a copy of every recorded request.
func (f *UpstreamFixture) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// RequestCount returns how many requests matched the method and path.
func (f *UpstreamFixture) RequestCount(method, path string) int {
	n := 0
	for _, req := range f.Requests() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

// Handle installs a custom handler, for tests that need to inspect
// request bodies (multipart uploads) or script per-call behavior.
func (f *UpstreamFixture) Handle(path string, h http.HandlerFunc) {
	f.mux.HandleFunc(path, h)
}

// StubList serves a paginated list endpoint. Items is the full result
// set; the handler slices it by the request's page/limit and wraps it in
// the {data, pagination} envelope.
func (f *UpstreamFixture) StubList(path string, items []map[string]any) {
	f.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit < 1 {
			limit = 20
		}

		start := (page - 1) * limit
		end := start + limit
		if start > len(items) {
			start = len(items)
		}
		if end > len(items) {
			end = len(items)
		}

		totalPages := (len(items) + limit - 1) / limit
		if totalPages < 1 {
			totalPages = 1
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": items[start:end],
			"pagination": map[string]any{
				"page":       page,
				"limit":      limit,
				"total":      len(items),
				"totalPages": totalPages,
			},
		})
	})
}

// StubJSON serves a fixed JSON response for any method on the path.
func (f *UpstreamFixture) StubJSON(path string, status int, body any) {
	f.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	})
}

// StubError serves an API error body for any method on the path.
func (f *UpstreamFixture) StubError(path string, status int, message string, fieldErrors map[string]string) {
	body := map[string]any{"message": message}
	if len(fieldErrors) > 0 {
		body["errors"] = fieldErrors
	}
	f.StubJSON(path, status, body)
}

// Banners returns n fake banner documents for StubList.
func Banners(n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, map[string]any{
			"banner_id": "b" + strconv.Itoa(i),
			"title":     "Banner " + strconv.Itoa(i),
			"status":    "active",
			"position":  i,
		})
	}
	return out
}

// Services returns n fake service documents for StubList.
func Services(n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, map[string]any{
			"service_id": "s" + strconv.Itoa(i),
			"title":      "Service " + strconv.Itoa(i),
			"category":   "cleaning",
			"status":     "ACTIVE",
		})
	}
	return out
}

// Payouts returns n fake payout documents for StubList.
func Payouts(n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, map[string]any{
			"payout_id":     "p" + strconv.Itoa(i),
			"provider_name": "Provider " + strconv.Itoa(i),
			"amount":        "100.00",
			"currency":      "USD",
			"status":        "PENDING",
		})
	}
	return out
}
