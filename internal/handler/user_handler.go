package handler

import (
	"net/http"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/service"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"

	"github.com/gin-gonic/gin"
)

// UserHandler 负责后台用户相关 HTTP 接口。
// 注意：该 Handler 同时承载两类路由：
// 1. 登录用户路由（登录、登出、当前用户）
// 2. 管理员路由（用户管理、统计）
// 是否允许访问由路由组挂载的中间件决定，而不是靠 Handler 类型区分。
type UserHandler struct {
	userService       service.UserService
	statisticsService service.StatisticsService
}

// NewUserHandler 创建 UserHandler。
func NewUserHandler(userService service.UserService, statisticsService service.StatisticsService) *UserHandler {
	return &UserHandler{userService: userService, statisticsService: statisticsService}
}

// LoginRequest 是登录接口请求体。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileResponse 是当前用户接口的响应结构。
type ProfileResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Login 处理登录请求并返回 access token。
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: failed to bind request: %v", err)
		respondBadRequest(c, "Invalid request body")
		return
	}

	result, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, "Login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Login successful",
		"data":    result,
	})
}

// GetProfile 返回当前登录用户信息。
// 用户对象由 AuthMiddleware 注入到上下文中。
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Profile retrieved successfully",
		"data": ProfileResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Logout 处理退出登录。
// 逻辑：从 Authorization 头提取 token，再交由 service 做黑名单处理。
func (h *UserHandler) Logout(c *gin.Context) {
	token, err := extractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		log.Warnf("Logout: invalid authorization header: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    http.StatusUnauthorized,
			"message": "Invalid authorization header",
		})
		return
	}

	if err := h.userService.Logout(c.Request.Context(), token); err != nil {
		respondServiceError(c, "Logout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Logout successful",
	})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		respondServiceError(c, "UserHandler.List", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Users retrieved successfully",
		"data":    users,
	})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, "UserHandler.Create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": "User created successfully",
		"data":    user,
	})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, service.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServiceError(c, "UserHandler.Update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "User updated successfully",
		"data":    user,
	})
}

// Delete 删除用户，管理员不能删除自己。
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := getUserFromContext(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(actor.ID, id); err != nil {
		respondServiceError(c, "UserHandler.Delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "User deleted successfully",
	})
}

// Statistics 返回管理后台首页统计。
func (h *UserHandler) Statistics(c *gin.Context) {
	if h.statisticsService == nil {
		respondServiceError(c, "UserHandler.Statistics", service.ErrInternal)
		return
	}
	stats, err := h.statisticsService.Get()
	if err != nil {
		respondServiceError(c, "UserHandler.Statistics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Statistics retrieved successfully",
		"data":    stats,
	})
}
