package handler

import (
	"net/http"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// TagHandler 负责 /api/tags/public 与 /api/tags/internal 两组接口。
// 每个方法接收分区并返回 gin.HandlerFunc，路由按分区分别注册。
type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type ReorderTagsRequest struct {
	TagIDs []uint `json:"tag_ids" binding:"required"`
}

// ListAll 同时返回两个分区。
func (h *TagHandler) ListAll(c *gin.Context) {
	public, internal, err := h.tagService.ListAll()
	if err != nil {
		respondServiceError(c, "TagHandler.ListAll", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Tags retrieved successfully",
		"data": gin.H{
			"public":   public,
			"internal": internal,
		},
	})
}

func (h *TagHandler) List(pool model.TagPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := h.tagService.List(pool)
		if err != nil {
			respondServiceError(c, "TagHandler.List", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"code":    http.StatusOK,
			"message": "Tags retrieved successfully",
			"data":    tags,
		})
	}
}

func (h *TagHandler) Create(pool model.TagPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}

		tag, err := h.tagService.Create(pool, req.Name, req.Color)
		if err != nil {
			respondServiceError(c, "TagHandler.Create", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"code":    http.StatusCreated,
			"message": "Tag created successfully",
			"data":    tag,
		})
	}
}

func (h *TagHandler) Update(pool model.TagPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateTagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}

		tag, err := h.tagService.Update(pool, id, req.Name, req.Color)
		if err != nil {
			respondServiceError(c, "TagHandler.Update", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"code":    http.StatusOK,
			"message": "Tag updated successfully",
			"data":    tag,
		})
	}
}

func (h *TagHandler) Delete(pool model.TagPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := h.tagService.Delete(pool, id); err != nil {
			respondServiceError(c, "TagHandler.Delete", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"code":    http.StatusOK,
			"message": "Tag deleted successfully",
		})
	}
}

func (h *TagHandler) Reorder(pool model.TagPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReorderTagsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}
		if err := h.tagService.Reorder(pool, req.TagIDs); err != nil {
			respondServiceError(c, "TagHandler.Reorder", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"code":    http.StatusOK,
			"message": "Tags reordered successfully",
		})
	}
}
