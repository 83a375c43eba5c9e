package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"
)

func TestDashboard_LoadWithFakeAPI(t *testing.T) {
	api := seededCategories()
	seeded := seededTags()
	api.tags = seeded.tags
	api.statuses = seededStatuses().statuses

	d := New(api, &fakePrompter{})
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(d.Categories.Roots()) != 3 || len(d.Tags.All()) != 5 || len(d.Statuses.Statuses()) != 3 {
		t.Fatal("registries not populated")
	}
	if n := len(api.Calls()); n != 4 {
		t.Fatalf("expect 4 fetches, got %d", n)
	}
}

// 通过真实的 apiclient 走一遍 HTTP：加载后删除系统状态不会产生任何请求。
func TestDashboard_OverHTTP_SystemStatusDeleteMakesNoRequest(t *testing.T) {
	var (
		mu   sync.Mutex
		hits []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, r.Method+" "+r.URL.Path)
		mu.Unlock()

		var data any
		switch r.URL.Path {
		case "/api/categories":
			data = []map[string]any{{"id": 1, "name": "ЖКХ", "order": 0}}
		case "/api/tags/public", "/api/tags/internal":
			data = []map[string]any{}
		case "/api/statuses":
			data = []map[string]any{{"id": 1, "status_key": "new", "name": "Новое", "color": "#3B82F6", "order": 0, "is_system": true}}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "message": "ok", "data": data})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL+"/api", time.Second, nil)
	prompter := &fakePrompter{answer: true}
	d := New(client, prompter)
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	mu.Lock()
	loaded := len(hits)
	mu.Unlock()
	if loaded != 4 {
		t.Fatalf("expect 4 requests on load, got %d", loaded)
	}

	before := d.Statuses.Statuses()
	if err := d.Statuses.Delete(context.Background(), 1); err != ErrSystemStatus {
		t.Fatalf("expect ErrSystemStatus, got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(hits) != loaded {
		t.Fatalf("guarded delete issued requests: %v", hits[loaded:])
	}
	if !reflect.DeepEqual(d.Statuses.Statuses(), before) || len(prompter.alerts) != 1 {
		t.Fatal("status list changed or no alert shown")
	}
}
