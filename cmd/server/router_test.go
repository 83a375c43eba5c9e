package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/handler"
	"github.com/NabievDev/NewPeople-sub000/internal/service"
	"github.com/NabievDev/NewPeople-sub000/pkg/token"

	"github.com/gin-gonic/gin"
)

type noopBlacklist struct{}

func (noopBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }
func (noopBlacklist) IsRevoked(context.Context, string) (bool, error)     { return false, nil }

// 受保护的路由在没有令牌时必须在进入 handler 之前被拦下。
func TestSetupRouter_ProtectedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtManager := token.NewJWTManager("test-secret", time.Minute)
	userService := service.NewUserService(nil, jwtManager, noopBlacklist{})
	h := handlers{
		user:     handler.NewUserHandler(userService, nil),
		category: handler.NewCategoryHandler(nil),
		tag:      handler.NewTagHandler(nil),
		status:   handler.NewStatusHandler(nil),
		appeal:   handler.NewAppealHandler(nil),
	}
	r := setupRouter(h, []string{"*"}, jwtManager, userService, noopBlacklist{})

	protected := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/categories"},
		{http.MethodPut, "/api/categories/reorder"},
		{http.MethodDelete, "/api/categories/3"},
		{http.MethodGet, "/api/tags"},
		{http.MethodGet, "/api/tags/internal"},
		{http.MethodPost, "/api/tags/public"},
		{http.MethodPut, "/api/tags/internal/reorder"},
		{http.MethodDelete, "/api/statuses/1"},
		{http.MethodGet, "/api/appeals"},
		{http.MethodPost, "/api/appeals/1/comments"},
		{http.MethodGet, "/api/users/statistics"},
	}
	for _, rt := range protected {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expect 401, got %d", rt.method, rt.path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health: expect 200, got %d", w.Code)
	}
}
