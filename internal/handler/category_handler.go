package handler

import (
	"net/http"

	"github.com/NabievDev/NewPeople-sub000/internal/service"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 负责分类树接口。读取公开，写操作挂在管理员路由组。
type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
}

// UpdateCategoryRequest 是部分更新；parent_id 显式传 null 表示移到根。
type UpdateCategoryRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ParentID    optionalID `json:"parent_id"`
	Order       *int       `json:"order"`
}

type ReorderCategoriesRequest struct {
	CategoryIDs []uint `json:"category_ids" binding:"required"`
	ParentID    *uint  `json:"parent_id"`
}

// GetTree 返回完整分类树，每层按 order 排序。
func (h *CategoryHandler) GetTree(c *gin.Context) {
	tree, err := h.categoryService.GetTree()
	if err != nil {
		respondServiceError(c, "CategoryHandler.GetTree", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Categories retrieved successfully",
		"data":    tree,
	})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(req.Name, req.Description, req.ParentID)
	if err != nil {
		respondServiceError(c, "CategoryHandler.Create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": "Category created successfully",
		"data":    category,
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(id, service.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		ParentSet:   req.ParentID.Set,
		ParentID:    req.ParentID.Value,
		Order:       req.Order,
	})
	if err != nil {
		respondServiceError(c, "CategoryHandler.Update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Category updated successfully",
		"data":    category,
	})
}

// Delete 删除分类。query 参数 strategy 控制子树处理方式：
// cascade（默认）连同后代删除，protect 有子分类时拒绝，reparent 子分类上移一级。
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	strategy, err := service.ParseDeleteStrategy(c.Query("strategy"))
	if err != nil {
		respondBadRequest(c, "Invalid delete strategy, use 'cascade', 'protect' or 'reparent'")
		return
	}

	if err := h.categoryService.Delete(id, strategy); err != nil {
		respondServiceError(c, "CategoryHandler.Delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Category deleted successfully",
	})
}

// Reorder 把一个兄弟分组按 category_ids 的顺序重新编号。
func (h *CategoryHandler) Reorder(c *gin.Context) {
	var req ReorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if err := h.categoryService.Reorder(req.ParentID, req.CategoryIDs); err != nil {
		respondServiceError(c, "CategoryHandler.Reorder", err)
		return
	}

	log.Infow("categories reordered", "parent_id", req.ParentID, "count", len(req.CategoryIDs))
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Categories reordered successfully",
	})
}
