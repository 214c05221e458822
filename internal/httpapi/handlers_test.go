package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/trackd/internal/storage"
	"github.com/sandeepkv93/trackd/internal/tracker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var _ Service = (*tracker.Store)(nil)

func newTestRouter(t *testing.T) (*gin.Engine, *tracker.Store) {
	t.Helper()
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	store := tracker.New(storage.NewMemoryRepository(), tracker.Options{Clock: func() time.Time { return now }})
	return NewRouter(store, RouterOptions{CORSOrigins: []string{"*"}}), store
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("unexpected healthz response %d %s", rec.Code, rec.Body.String())
	}
}

func TestListTasksReturnsSeeds(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/api/tasks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	tasks := decode[[]taskDTO](t, rec)
	if len(tasks) != 3 || tasks[0].Name != "Morning Workout" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	if len(tasks[0].Days) != 30 || tasks[0].Days[0].Key != "2026-10-16" {
		t.Fatalf("unexpected window %+v", tasks[0].Days[:1])
	}
	if tasks[0].Streak.State != "idle" {
		t.Fatalf("expected idle streak, got %s", tasks[0].Streak.State)
	}
}

func TestAddTask(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(t, r, http.MethodPost, "/api/tasks", `{"name":"  Read  "}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d %s", rec.Code, rec.Body.String())
	}
	if task := decode[taskDTO](t, rec); task.Name != "Read" || task.ID == "" {
		t.Fatalf("unexpected task %+v", task)
	}

	if rec := do(t, r, http.MethodPost, "/api/tasks", `{"name":"   "}`); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for blank name, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/api/tasks", `not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", rec.Code)
	}
}

func TestToggleClaimAndProfile(t *testing.T) {
	r, store := newTestRouter(t)
	tasks, err := store.ListTasks(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	id := tasks[1].Task.ID

	rec := do(t, r, http.MethodPost, "/api/tasks/"+id+"/days/today/toggle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", rec.Code, rec.Body.String())
	}
	task := decode[taskDTO](t, rec)
	if !task.Days[0].Done || task.Days[0].CheckedAt == nil || task.Streak.Count != 1 {
		t.Fatalf("unexpected toggled task %+v", task)
	}

	rec = do(t, r, http.MethodGet, "/api/tasks/"+id+"/streak", "")
	if s := decode[streakDTO](t, rec); s.State != "active" || s.Count != 1 {
		t.Fatalf("unexpected streak %+v", s)
	}

	rec = do(t, r, http.MethodGet, "/api/profile", "")
	if p := decode[profileDTO](t, rec); p.Unclaimed != 1 || p.Wallet != 0 {
		t.Fatalf("unexpected profile before claim %+v", p)
	}

	rec = do(t, r, http.MethodPost, "/api/coins/claim", "")
	claim := decode[struct {
		Claimed int        `json:"claimed"`
		Profile profileDTO `json:"profile"`
	}](t, rec)
	if claim.Claimed != 1 || claim.Profile.Wallet != 1 || claim.Profile.ClaimedCheckCount != 1 {
		t.Fatalf("unexpected claim %+v", claim)
	}
}

func TestToggleErrors(t *testing.T) {
	r, store := newTestRouter(t)
	tasks, _ := store.ListTasks(t.Context())
	id := tasks[0].Task.ID

	cases := []struct {
		path string
		code int
	}{
		{"/api/tasks/missing/days/today/toggle", http.StatusNotFound},
		{"/api/tasks/" + id + "/days/2026-13-01/toggle", http.StatusBadRequest},
		{"/api/tasks/" + id + "/days/2026-10-15/toggle", http.StatusBadRequest},
		{"/api/tasks/" + id + "/days/+30/toggle", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := do(t, r, http.MethodPost, tc.path, "")
		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d %s", tc.path, tc.code, rec.Code, rec.Body.String())
		}
		if e := decode[errorResponse](t, rec); e.Error == "" {
			t.Fatalf("%s: expected error body", tc.path)
		}
	}
}

func TestDeleteNeedsConfirm(t *testing.T) {
	r, store := newTestRouter(t)
	tasks, _ := store.ListTasks(t.Context())
	id := tasks[0].Task.ID

	if rec := do(t, r, http.MethodDelete, "/api/tasks/"+id, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 without confirm, got %d", rec.Code)
	}
	if got, _ := store.ListTasks(t.Context()); len(got) != 3 {
		t.Fatalf("unconfirmed delete removed a task")
	}
	if rec := do(t, r, http.MethodDelete, "/api/tasks/"+id+"?confirm=true", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with confirm, got %d", rec.Code)
	}
	if got, _ := store.ListTasks(t.Context()); len(got) != 2 {
		t.Fatalf("expected 2 tasks after delete, got %d", len(got))
	}
	if rec := do(t, r, http.MethodDelete, "/api/tasks/"+id+"?confirm=true", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted task, got %d", rec.Code)
	}
}

func TestThemeAndReset(t *testing.T) {
	r, _ := newTestRouter(t)
	if rec := do(t, r, http.MethodPut, "/api/theme", `{"theme":"black"}`); rec.Code != http.StatusOK {
		t.Fatalf("set theme: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, r, http.MethodPut, "/api/theme", `{"theme":"neon"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown theme, got %d", rec.Code)
	}

	do(t, r, http.MethodPost, "/api/tasks", `{"name":"Extra"}`)
	if rec := do(t, r, http.MethodDelete, "/api/session", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("reset: %d", rec.Code)
	}
	rec := do(t, r, http.MethodGet, "/api/overview", "")
	o := decode[overviewDTO](t, rec)
	if o.TotalTasks != 3 || o.Theme != "black" || o.Today != "2026-10-16" {
		t.Fatalf("unexpected overview after reset %+v", o)
	}
	if rec := do(t, r, http.MethodGet, "/api/theme", ""); !strings.Contains(rec.Body.String(), "black") {
		t.Fatalf("theme must survive reset: %s", rec.Body.String())
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/api/analytics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("analytics: %d", rec.Code)
	}
	var snap struct {
		TotalTasks int               `json:"totalTasks"`
		DaySeries  []json.RawMessage `json:"daySeries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.TotalTasks != 3 || len(snap.DaySeries) != 30 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS headers, got %v", rec.Header())
	}
}

func TestServerShutsDownOnCancel(t *testing.T) {
	r, _ := newTestRouter(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(t.Context())
	srv := NewServer(ln.Addr().String(), r, nil)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
