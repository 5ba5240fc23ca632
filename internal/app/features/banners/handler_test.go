package banners_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math/rand"
	"mime/multipart"
	"net/textproto"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/app/features/banners"
	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/system/uistate"
	"github.com/caristo/adminhub/internal/testutil"
)

func newTestHandler(t *testing.T, fix *testutil.UpstreamFixture) *banners.Handler {
	t.Helper()
	limits := banners.UploadLimits{MaxBytes: 10 << 20, MaxWidth: 1280, JPEGQuality: 80}
	return banners.NewHandler(fix.Client(), uierrors.NewErrorLogger(zap.NewNop()), nil, uistate.NewRegistry(), limits, zap.NewNop())
}

// renderSafe swallows template panics; template sets are not initialized
// in handler tests, so only the side effects are asserted.
func renderSafe(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// pngBytes encodes a w x h PNG. Noisy pixels keep the encoding near
// raw size, which is how the large-upload tests clear the transcode
// threshold.
func pngBytes(t *testing.T, w, h int, noisy bool) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if noisy {
				img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
			} else {
				img.Set(x, y, color.RGBA{40, 90, 200, 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartRequest(t *testing.T, target string, fields map[string]string, filename string, fileData []byte, user testutil.TestUser) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if filename != "" {
		// CreateFormFile hardcodes application/octet-stream; browsers
		// send the real type, so build the part by hand.
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
		hdr.Set("Content-Type", "image/png")
		fw, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest("POST", target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return testutil.WithUser(req, user)
}

func TestNewHandler(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	h := newTestHandler(t, fix)
	if h == nil {
		t.Fatal("NewHandler() returned nil")
	}
	if h.Lists == nil {
		t.Fatal("list controller not wired")
	}
}

func TestServeList_FetchesUpstream(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubList("/admin/banners", testutil.Banners(3))
	h := newTestHandler(t, fix)

	req := testutil.NewAuthenticatedRequest("GET", "/banners", testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.ServeList(rec, req) })

	if got := fix.RequestCount("GET", "/admin/banners"); got != 1 {
		t.Fatalf("upstream list calls = %d, want 1", got)
	}
	reqs := fix.Requests()
	if reqs[0].Query["page"] != "1" || reqs[0].Query["limit"] != "20" {
		t.Errorf("query = %v, want page=1 limit=20", reqs[0].Query)
	}
}

func TestServeList_AllStatusOmitted(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubList("/admin/banners", testutil.Banners(2))
	h := newTestHandler(t, fix)

	req := testutil.NewAuthenticatedRequest("GET", "/banners?status=all", testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.ServeList(rec, req) })

	reqs := fix.Requests()
	if len(reqs) != 1 {
		t.Fatalf("upstream calls = %d, want 1", len(reqs))
	}
	if _, present := reqs[0].Query["status"]; present {
		t.Errorf("status=all must be dropped from the upstream query, got %v", reqs[0].Query)
	}
}

func TestServeList_CachedBetweenLoads(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubList("/admin/banners", testutil.Banners(2))
	h := newTestHandler(t, fix)

	for i := 0; i < 2; i++ {
		req := testutil.NewAuthenticatedRequest("GET", "/banners", testutil.AdminUser())
		rec := httptest.NewRecorder()
		renderSafe(func() { h.ServeList(rec, req) })
	}

	if got := fix.RequestCount("GET", "/admin/banners"); got != 1 {
		t.Fatalf("upstream list calls = %d, want 1 (second load should hit the cache)", got)
	}
}

func TestServeList_RetryForcesRefetch(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubList("/admin/banners", testutil.Banners(2))
	h := newTestHandler(t, fix)
	user := testutil.AdminUser()

	list := func(target string) {
		req := testutil.NewAuthenticatedRequest("GET", target, user)
		rec := httptest.NewRecorder()
		renderSafe(func() { h.ServeList(rec, req) })
	}

	list("/banners")
	// The error banner's Retry control reloads with retry=1, which must
	// bypass the cache and hit upstream again.
	list("/banners?retry=1")

	if got := fix.RequestCount("GET", "/admin/banners"); got != 2 {
		t.Fatalf("upstream list calls = %d, want 2 (retry must bypass the cache)", got)
	}
}

func TestHandleColumns_PersistsPerSession(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	ui := uistate.NewRegistry()
	limits := banners.UploadLimits{MaxBytes: 10 << 20, MaxWidth: 1280, JPEGQuality: 80}
	h := banners.NewHandler(fix.Client(), uierrors.NewErrorLogger(zap.NewNop()), nil, ui, limits, zap.NewNop())
	user := testutil.AdminUser()

	// Only the image checkbox is on; link comes back hidden.
	req := testutil.NewFormRequest("/banners/columns", map[string]string{"col_image": "on"}, user)
	rec := httptest.NewRecorder()
	h.HandleColumns(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	sc := ui.Session(user.ID).Screen("banners")
	if !sc.ColumnVisible("image") {
		t.Error("image column hidden, want visible")
	}
	if sc.ColumnVisible("link") {
		t.Error("link column visible, want hidden")
	}

	// Another operator's screen keeps the defaults.
	other := ui.Session("other-admin").Screen("banners")
	if !other.ColumnVisible("link") {
		t.Error("column toggle leaked across sessions")
	}
}

func TestHandleDelete_FailureKeepsDialogOpenForRetry(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	var fail atomic.Bool
	fail.Store(true)
	fix.Handle("/admin/banners/b1", func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"message":"upstream unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	ui := uistate.NewRegistry()
	limits := banners.UploadLimits{MaxBytes: 10 << 20, MaxWidth: 1280, JPEGQuality: 80}
	h := banners.NewHandler(fix.Client(), uierrors.NewErrorLogger(zap.NewNop()), nil, ui, limits, zap.NewNop())
	user := testutil.AdminUser()

	confirm := func() int {
		req := testutil.NewAuthenticatedRequest("POST", "/banners/b1/delete", user)
		req = testutil.WithChiURLParam(req, "id", "b1")
		rec := httptest.NewRecorder()
		renderSafe(func() { h.HandleDelete(rec, req) })
		return rec.Code
	}

	// The failure redirects back to the list like any confirm; no error
	// page replaces the screen.
	if code := confirm(); code != http.StatusSeeOther {
		t.Fatalf("failed confirm status = %d, want %d", code, http.StatusSeeOther)
	}
	dlg := ui.Session(user.ID).Screen("banners").Dialog("delete")
	if dlg == nil {
		t.Fatal("dialog closed after a failed delete, want it kept open")
	}
	if dlg.GeneralError() == "" {
		t.Error("failed delete left no error on the dialog")
	}

	// The still-open dialog accepts a repeat confirm as a retry.
	fail.Store(false)
	if code := confirm(); code != http.StatusSeeOther {
		t.Fatalf("retry confirm status = %d, want %d", code, http.StatusSeeOther)
	}
	if got := fix.RequestCount("DELETE", "/admin/banners/b1"); got != 2 {
		t.Fatalf("upstream delete calls = %d, want 2 (failure then retry)", got)
	}
	if ui.Session(user.ID).Screen("banners").Dialog("delete") != nil {
		t.Error("dialog still open after a successful retry")
	}
}

func TestHandleCreate_EmptyTitleBlocked(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	h := newTestHandler(t, fix)

	req := multipartRequest(t, "/banners",
		map[string]string{"title": "", "link_url": "", "status": "active"},
		"promo.png", pngBytes(t, 10, 10, false), testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleCreate(rec, req) })

	if got := fix.RequestCount("POST", "/admin/banners"); got != 0 {
		t.Fatalf("upstream create calls = %d, want 0 when validation fails", got)
	}
}

func TestHandleCreate_SmallImagePassthrough(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	original := pngBytes(t, 10, 10, false)

	var mu sync.Mutex
	var gotType string
	var gotLen int
	fix.Handle("/admin/banners", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		mu.Lock()
		gotType = header.Header.Get("Content-Type")
		gotLen = len(data)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})

	h := newTestHandler(t, fix)
	req := multipartRequest(t, "/banners",
		map[string]string{"title": "Spring Sale", "status": "active"},
		"promo.png", original, testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleCreate(rec, req) })

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	mu.Lock()
	defer mu.Unlock()
	if gotType != "image/png" {
		t.Errorf("attached content type = %q, want image/png passthrough", gotType)
	}
	if gotLen != len(original) {
		t.Errorf("attached size = %d, want %d (unchanged)", gotLen, len(original))
	}
}

func TestHandleCreate_LargeImageTranscoded(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	original := pngBytes(t, 600, 600, true)
	if len(original) <= 500*1024 {
		t.Fatalf("fixture image is %d bytes, need > 500KB", len(original))
	}

	var mu sync.Mutex
	var gotType string
	var gotData []byte
	fix.Handle("/admin/banners", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		mu.Lock()
		gotType = header.Header.Get("Content-Type")
		gotData = data
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})

	h := newTestHandler(t, fix)
	req := multipartRequest(t, "/banners",
		map[string]string{"title": "Mega Sale", "status": "active"},
		"huge.png", original, testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleCreate(rec, req) })

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	mu.Lock()
	defer mu.Unlock()
	if gotType != "image/jpeg" {
		t.Fatalf("attached content type = %q, want image/jpeg after transcode", gotType)
	}
	img, err := jpeg.Decode(bytes.NewReader(gotData))
	if err != nil {
		t.Fatalf("attached data is not a decodable JPEG: %v", err)
	}
	if w := img.Bounds().Dx(); w > 1280 {
		t.Errorf("transcoded width = %d, want <= 1280", w)
	}
}

func TestHandleDelete_DuplicateConfirmSendsOneRequest(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.Handle("/admin/banners/b1", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	})

	h := newTestHandler(t, fix)
	user := testutil.AdminUser()

	fire := func(done chan<- int) {
		req := testutil.NewAuthenticatedRequest("POST", "/banners/b1/delete", user)
		req = testutil.WithChiURLParam(req, "id", "b1")
		rec := httptest.NewRecorder()
		renderSafe(func() { h.HandleDelete(rec, req) })
		done <- rec.Code
	}

	first := make(chan int, 1)
	second := make(chan int, 1)
	go fire(first)
	time.Sleep(50 * time.Millisecond)
	go fire(second)

	if code := <-first; code != http.StatusSeeOther {
		t.Errorf("first confirm status = %d, want %d", code, http.StatusSeeOther)
	}
	if code := <-second; code != http.StatusSeeOther {
		t.Errorf("second confirm status = %d, want %d", code, http.StatusSeeOther)
	}

	if got := fix.RequestCount("DELETE", "/admin/banners/b1"); got != 1 {
		t.Fatalf("upstream delete calls = %d, want exactly 1", got)
	}
}

func TestHandleDelete_SuccessRefetchesList(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubList("/admin/banners", testutil.Banners(2))
	fix.Handle("/admin/banners/b1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	h := newTestHandler(t, fix)
	user := testutil.AdminUser()

	list := func() {
		req := testutil.NewAuthenticatedRequest("GET", "/banners", user)
		rec := httptest.NewRecorder()
		renderSafe(func() { h.ServeList(rec, req) })
	}

	list()
	del := testutil.NewAuthenticatedRequest("POST", "/banners/b1/delete", user)
	del = testutil.WithChiURLParam(del, "id", "b1")
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleDelete(rec, del) })
	list()

	if got := fix.RequestCount("GET", "/admin/banners"); got != 2 {
		t.Fatalf("upstream list calls = %d, want 2 (delete must invalidate the cache)", got)
	}
}

func TestHandleCreate_UpstreamFieldErrorsKeepFormOpen(t *testing.T) {
	fix := testutil.NewUpstreamFixture(t)
	fix.StubError("/admin/banners", http.StatusUnprocessableEntity, "Validation failed", map[string]string{"title": "Title already in use"})

	h := newTestHandler(t, fix)
	req := multipartRequest(t, "/banners",
		map[string]string{"title": "Spring Sale", "status": "active"},
		"promo.png", pngBytes(t, 10, 10, false), testutil.AdminUser())
	rec := httptest.NewRecorder()
	renderSafe(func() { h.HandleCreate(rec, req) })

	if rec.Code == http.StatusSeeOther {
		t.Fatalf("got redirect, want the form re-rendered after an upstream rejection")
	}
	if got := fix.RequestCount("POST", "/admin/banners"); got != 1 {
		t.Fatalf("upstream create calls = %d, want 1", got)
	}
}
