package handler

import (
	"net/http"
	"testing"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

func newStatusRouter(h *StatusHandler) *gin.Engine {
	r := gin.New()
	r.GET("/statuses", h.List)
	r.POST("/statuses", h.Create)
	r.PUT("/statuses/reorder", h.Reorder)
	r.PATCH("/statuses/:id", h.Update)
	r.DELETE("/statuses/:id", h.Delete)
	return r
}

func TestStatusHandler_Delete_SystemIsConflict(t *testing.T) {
	svc := &fakeStatusService{deleteFn: func(id uint) error { return service.ErrSystemStatus }}
	r := newStatusRouter(NewStatusHandler(svc))

	w := doReq(r, http.MethodDelete, "/statuses/1", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expect 409, got %d", w.Code)
	}
	if msg := decodeEnvelope(t, w)["message"]; msg != "System status cannot be deleted" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

// status_key 不在更新请求体里，客户端传了也不会被转给 service。
func TestStatusHandler_Update_IgnoresKey(t *testing.T) {
	svc := &fakeStatusService{updateFn: func(id uint, name, color, description *string) (*model.StatusConfig, error) {
		return &model.StatusConfig{ID: id, StatusKey: "new", Name: *name}, nil
	}}
	r := newStatusRouter(NewStatusHandler(svc))

	w := doReq(r, http.MethodPatch, "/statuses/1", `{"name":"Поступило","status_key":"hacked"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d", w.Code)
	}
	data := decodeEnvelope(t, w)["data"].(map[string]any)
	if data["status_key"] != "new" {
		t.Fatalf("status_key changed: %v", data)
	}
}

func TestStatusHandler_Create_RequiresColor(t *testing.T) {
	r := newStatusRouter(NewStatusHandler(&fakeStatusService{}))

	if w := doReq(r, http.MethodPost, "/statuses", `{"name":"On hold"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expect 400, got %d", w.Code)
	}
}
