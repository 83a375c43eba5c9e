package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/NabievDev/NewPeople-sub000/internal/dashboard"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
	auth   string
}

// fakeAPI 是一个最小的服务端替身，按路径返回固定数据并记录请求。
type fakeAPI struct {
	mu   sync.Mutex
	reqs []recorded
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.reqs = append(f.reqs, recorded{r.Method, r.URL.Path, r.URL.RawQuery, string(body), r.Header.Get("Authorization")})
		f.mu.Unlock()

		status := http.StatusOK
		var data any
		switch r.Method + " " + r.URL.Path {
		case "POST /api/auth/login":
			data = map[string]any{
				"access_token": "tok-1",
				"token_type":   "bearer",
				"expires_at":   "2030-01-01T00:00:00Z",
				"user":         map[string]any{"id": 1, "username": "admin", "role": "admin", "is_active": true},
			}
		case "GET /api/statuses":
			data = []map[string]any{
				{"id": 1, "status_key": "new", "name": "Новое", "color": "#3B82F6", "order": 0, "is_system": true},
				{"id": 5, "status_key": "waiting", "name": "Ждёт", "color": "#6B7280", "order": 1, "is_system": false},
			}
		case "DELETE /api/statuses/5":
			data = nil
		case "GET /api/tags/public", "GET /api/tags/internal":
			data = []map[string]any{}
		case "POST /api/tags/internal":
			status = http.StatusCreated
			data = map[string]any{"id": 7, "name": "Срочно", "color": "#FF0000", "is_public": false, "order": 0}
		case "GET /api/appeals":
			data = []map[string]any{}
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 404, "message": "not found"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": status, "message": "ok", "data": data})
	})
}

func (f *fakeAPI) requests() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.reqs...)
}

func (f *fakeAPI) count(method, path string) int {
	n := 0
	for _, r := range f.requests() {
		if r.method == method && r.path == path {
			n++
		}
	}
	return n
}

// setup 启动替身服务并通过环境变量把 appealctl 指向它。
func setup(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	tokenPath := filepath.Join(t.TempDir(), "token")
	t.Setenv("APPEALCTL_CONFIG", "")
	t.Setenv("APPEALS_CLIENT_BASE_URL", srv.URL+"/api")
	t.Setenv("APPEALS_CLIENT_TOKEN_PATH", tokenPath)
	t.Setenv("APPEALS_LOG_LEVEL", "error")
	return api, tokenPath
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLogin_StoresTokenForLaterCommands(t *testing.T) {
	api, tokenPath := setup(t)

	out, _, err := run(t, "", "login", "admin", "-p", "admin123")
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(out, `"username":"admin"`) {
		t.Fatalf("unexpected login output: %s", out)
	}
	raw, err := os.ReadFile(tokenPath)
	if err != nil || strings.TrimSpace(string(raw)) != "tok-1" {
		t.Fatalf("token file = %q, %v", raw, err)
	}

	if _, _, err := run(t, "", "appeals", "list", "--status", "new", "--limit", "10"); err != nil {
		t.Fatalf("appeals list error = %v", err)
	}
	reqs := api.requests()
	last := reqs[len(reqs)-1]
	if last.auth != "Bearer tok-1" {
		t.Fatalf("expect bearer from stored session, got %q", last.auth)
	}
	if last.query != "limit=10&status=new" {
		t.Fatalf("unexpected query %q", last.query)
	}
}

func TestLogin_PromptsForPassword(t *testing.T) {
	api, _ := setup(t)

	if _, _, err := run(t, "secret\n", "login", "admin"); err != nil {
		t.Fatalf("login error = %v", err)
	}
	reqs := api.requests()
	if len(reqs) != 1 || !strings.Contains(reqs[0].body, `"password":"secret"`) {
		t.Fatalf("unexpected login request: %+v", reqs)
	}
}

func TestStatusesDelete_SystemStatusRefusedWithoutRequest(t *testing.T) {
	api, _ := setup(t)

	_, stderr, err := run(t, "", "statuses", "delete", "1", "--yes")
	if !errors.Is(err, dashboard.ErrSystemStatus) {
		t.Fatalf("expect ErrSystemStatus, got %v", err)
	}
	if !strings.Contains(stderr, "! ") {
		t.Fatalf("expect an alert on stderr, got %q", stderr)
	}
	for _, r := range api.requests() {
		if r.method == http.MethodDelete {
			t.Fatalf("unexpected delete request: %+v", r)
		}
	}
}

func TestStatusesDelete_CustomStatusAfterConfirm(t *testing.T) {
	api, _ := setup(t)

	if _, _, err := run(t, "да\n", "statuses", "delete", "5"); err != nil {
		t.Fatalf("delete error = %v", err)
	}
	if api.count(http.MethodDelete, "/api/statuses/5") != 1 {
		t.Fatalf("expect one delete, got %+v", api.requests())
	}
}

func TestStatusesDelete_DeclinedConfirm(t *testing.T) {
	api, _ := setup(t)

	_, _, err := run(t, "n\n", "statuses", "delete", "5")
	if !errors.Is(err, dashboard.ErrCancelled) {
		t.Fatalf("expect ErrCancelled, got %v", err)
	}
	if api.count(http.MethodDelete, "/api/statuses/5") != 0 {
		t.Fatal("declined delete must not reach the server")
	}
}

func TestTagsCreate_InternalPool(t *testing.T) {
	api, _ := setup(t)

	out, _, err := run(t, "", "tags", "create", "Срочно", "--color", "#FF0000")
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if !strings.Contains(out, `"id":7`) {
		t.Fatalf("expect server record in output, got %s", out)
	}
	if api.count(http.MethodPost, "/api/tags/internal") != 1 {
		t.Fatalf("expect POST to internal pool, got %+v", api.requests())
	}
}

func TestTags_InvalidPool(t *testing.T) {
	api, _ := setup(t)

	if _, _, err := run(t, "", "tags", "list", "--pool", "secret"); err == nil {
		t.Fatal("expect error for unknown pool")
	}
	if len(api.requests()) != 0 {
		t.Fatal("invalid pool must fail before any request")
	}
}

func TestAppealsSubmit_RequiresEmail(t *testing.T) {
	api, _ := setup(t)

	if _, _, err := run(t, "", "appeals", "submit", "Не работает фонарь"); err == nil {
		t.Fatal("expect error without --email")
	}
	if len(api.requests()) != 0 {
		t.Fatal("no request expected")
	}
}

func TestInvalidLogLevelIsAnError(t *testing.T) {
	api, _ := setup(t)

	_, _, err := run(t, "", "statuses", "list", "--log-level", "verbose")
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("expect invalid log level error, got %v", err)
	}
	if len(api.requests()) != 0 {
		t.Fatal("no request expected")
	}
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"0", "-3", "abc", ""} {
		if _, err := parseID(raw); err == nil {
			t.Errorf("parseID(%q) expect error", raw)
		}
	}
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Fatalf("parseID(42) = %d, %v", id, err)
	}
}

func TestStdioPrompter_Confirm(t *testing.T) {
	cases := []struct {
		input string
		yes   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"Да\n", false, true},
		{"\n", false, false},
		{"nope\n", false, false},
		{"", true, true},
	}
	for _, tc := range cases {
		p := newStdioPrompter(strings.NewReader(tc.input), io.Discard, tc.yes)
		if got := p.Confirm("delete?"); got != tc.want {
			t.Errorf("Confirm(%q, yes=%v) = %v, want %v", tc.input, tc.yes, got, tc.want)
		}
	}
}
