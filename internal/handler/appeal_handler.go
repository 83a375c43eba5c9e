package handler

import (
	"net/http"
	"strconv"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
	"github.com/NabievDev/NewPeople-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// AppealHandler 负责诉求接口：提交公开，其余需要登录。
type AppealHandler struct {
	appealService service.AppealService
}

func NewAppealHandler(appealService service.AppealService) *AppealHandler {
	return &AppealHandler{appealService: appealService}
}

type CreateAppealRequest struct {
	IsAnonymous bool    `json:"is_anonymous"`
	AuthorName  *string `json:"author_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	CategoryID  *uint   `json:"category_id"`
	Text        string  `json:"text" binding:"required"`
}

type UpdateAppealRequest struct {
	Status         *string `json:"status"`
	PublicTagIDs   *[]uint `json:"public_tag_ids"`
	InternalTagIDs *[]uint `json:"internal_tag_ids"`
}

type CreateCommentRequest struct {
	Text       string `json:"text" binding:"required"`
	IsInternal bool   `json:"is_internal"`
}

func (h *AppealHandler) Create(c *gin.Context) {
	var req CreateAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	appeal, err := h.appealService.Create(service.AppealInput{
		IsAnonymous: req.IsAnonymous,
		AuthorName:  req.AuthorName,
		Email:       req.Email,
		Phone:       req.Phone,
		CategoryID:  req.CategoryID,
		Text:        req.Text,
	})
	if err != nil {
		respondServiceError(c, "AppealHandler.Create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": "Appeal submitted successfully",
		"data":    appeal,
	})
}

// queryInt 读取非负整数查询参数，缺省返回 0。
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		respondBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// List 支持 internal_tag_id、status、skip、limit 过滤，按创建时间倒序。
func (h *AppealHandler) List(c *gin.Context) {
	tagID, ok := queryInt(c, "internal_tag_id")
	if !ok {
		return
	}
	skip, ok := queryInt(c, "skip")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	appeals, err := h.appealService.List(repository.AppealFilter{
		InternalTagID: uint(tagID),
		Status:        c.Query("status"),
		Skip:          skip,
		Limit:         limit,
	})
	if err != nil {
		respondServiceError(c, "AppealHandler.List", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Appeals retrieved successfully",
		"data":    appeals,
	})
}

func (h *AppealHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appeal, err := h.appealService.Get(id)
	if err != nil {
		respondServiceError(c, "AppealHandler.Get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Appeal retrieved successfully",
		"data":    appeal,
	})
}

func (h *AppealHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	appeal, err := h.appealService.Update(id, service.AppealPatch{
		Status:         req.Status,
		PublicTagIDs:   req.PublicTagIDs,
		InternalTagIDs: req.InternalTagIDs,
	})
	if err != nil {
		respondServiceError(c, "AppealHandler.Update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Appeal updated successfully",
		"data":    appeal,
	})
}

// tagTarget 解析 /appeals/:id/tags/:tag_id?pool=，pool 缺省为 internal。
func tagTarget(c *gin.Context) (appealID, tagID uint, pool model.TagPool, ok bool) {
	if appealID, ok = parseIDParam(c, "id"); !ok {
		return
	}
	if tagID, ok = parseIDParam(c, "tag_id"); !ok {
		return
	}
	pool = model.TagPool(c.DefaultQuery("pool", string(model.TagPoolInternal)))
	if !pool.Valid() {
		respondBadRequest(c, "Invalid tag pool, use 'public' or 'internal'")
		return 0, 0, "", false
	}
	return appealID, tagID, pool, true
}

func (h *AppealHandler) AttachTag(c *gin.Context) {
	appealID, tagID, pool, ok := tagTarget(c)
	if !ok {
		return
	}
	appeal, err := h.appealService.AttachTag(appealID, tagID, pool)
	if err != nil {
		respondServiceError(c, "AppealHandler.AttachTag", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Tag attached successfully",
		"data":    appeal,
	})
}

func (h *AppealHandler) DetachTag(c *gin.Context) {
	appealID, tagID, pool, ok := tagTarget(c)
	if !ok {
		return
	}
	appeal, err := h.appealService.DetachTag(appealID, tagID, pool)
	if err != nil {
		respondServiceError(c, "AppealHandler.DetachTag", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Tag detached successfully",
		"data":    appeal,
	})
}

func (h *AppealHandler) ListComments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.appealService.ListComments(id)
	if err != nil {
		respondServiceError(c, "AppealHandler.ListComments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Comments retrieved successfully",
		"data":    comments,
	})
}

func (h *AppealHandler) AddComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	comment, err := h.appealService.AddComment(id, user.ID, req.Text, req.IsInternal)
	if err != nil {
		respondServiceError(c, "AppealHandler.AddComment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": "Comment added successfully",
		"data":    comment,
	})
}
