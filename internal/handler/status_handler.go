package handler

import (
	"net/http"

	"github.com/NabievDev/NewPeople-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// StatusHandler 负责诉求状态配置接口。
type StatusHandler struct {
	statusService service.StatusService
}

func NewStatusHandler(statusService service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

type CreateStatusRequest struct {
	StatusKey   string  `json:"status_key"`
	Name        string  `json:"name" binding:"required"`
	Color       string  `json:"color" binding:"required"`
	Description *string `json:"description"`
}

// UpdateStatusRequest 不包含 status_key，即使客户端传了也会被忽略。
type UpdateStatusRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

type ReorderStatusesRequest struct {
	StatusIDs []uint `json:"status_ids" binding:"required"`
}

func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.statusService.List()
	if err != nil {
		respondServiceError(c, "StatusHandler.List", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Statuses retrieved successfully",
		"data":    statuses,
	})
}

func (h *StatusHandler) Create(c *gin.Context) {
	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	status, err := h.statusService.Create(req.StatusKey, req.Name, req.Color, req.Description)
	if err != nil {
		respondServiceError(c, "StatusHandler.Create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": "Status created successfully",
		"data":    status,
	})
}

func (h *StatusHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	status, err := h.statusService.Update(id, req.Name, req.Color, req.Description)
	if err != nil {
		respondServiceError(c, "StatusHandler.Update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Status updated successfully",
		"data":    status,
	})
}

// Delete 删除自定义状态；系统状态返回 409。
func (h *StatusHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.statusService.Delete(id); err != nil {
		respondServiceError(c, "StatusHandler.Delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Status deleted successfully",
	})
}

func (h *StatusHandler) Reorder(c *gin.Context) {
	var req ReorderStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}
	if err := h.statusService.Reorder(req.StatusIDs); err != nil {
		respondServiceError(c, "StatusHandler.Reorder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Statuses reordered successfully",
	})
}
