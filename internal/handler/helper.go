package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/service"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"

	"github.com/gin-gonic/gin"
)

// mapServiceError 把 Service 层哨兵错误转换为 HTTP 状态码和对外消息。
func mapServiceError(err error) (httpStatus int, message string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request parameters"
	case errors.Is(err, service.ErrInvalidReorder):
		return http.StatusBadRequest, "Reorder ids do not match the group"
	case errors.Is(err, service.ErrEmailRequired):
		return http.StatusBadRequest, "Email is required for non-anonymous appeals"
	case errors.Is(err, service.ErrCategoryCycle):
		return http.StatusBadRequest, "Category cannot be moved under itself"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, service.ErrUserInactive):
		return http.StatusForbidden, "User is inactive"
	case errors.Is(err, service.ErrCannotDeleteSelf):
		return http.StatusBadRequest, "Cannot delete yourself"
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusNotFound, "Category not found"
	case errors.Is(err, service.ErrCategoryHasChildren):
		return http.StatusConflict, "Category has subcategories"
	case errors.Is(err, service.ErrTagNotFound):
		return http.StatusNotFound, "Tag not found"
	case errors.Is(err, service.ErrTagAlreadyExists):
		return http.StatusConflict, "Tag already exists"
	case errors.Is(err, service.ErrStatusNotFound):
		return http.StatusNotFound, "Status not found"
	case errors.Is(err, service.ErrStatusAlreadyExists):
		return http.StatusConflict, "Status already exists"
	case errors.Is(err, service.ErrSystemStatus):
		return http.StatusConflict, "System status cannot be deleted"
	case errors.Is(err, service.ErrAppealNotFound):
		return http.StatusNotFound, "Appeal not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondServiceError 记录并输出 service 错误，op 用于定位日志来源。
func respondServiceError(c *gin.Context, op string, err error) {
	status, msg := mapServiceError(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %v", op, err)
	} else {
		log.Warnf("%s: %v", op, err)
	}
	c.JSON(status, gin.H{
		"code":    status,
		"message": msg,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    http.StatusBadRequest,
		"message": message,
	})
}

// parseIDParam 读取路径参数中的数字 id，失败时直接写 400。
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// optionalID 区分 JSON 里“没传”、“传了 null”和“传了数字”三种情况。
type optionalID struct {
	Set   bool
	Value *uint
}

func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// extractBearerToken 从 Authorization 请求头提取 Bearer Token。
// 期望格式：Authorization: Bearer <token>
func extractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	if strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("empty token")
	}
	return parts[1], nil
}

// getUserFromContext 从 Gin 上下文中读取 AuthMiddleware 注入的用户对象。
// 如果上下文异常，该函数会直接写错误响应并返回 false，调用方只需 `if !ok { return }`。
func getUserFromContext(c *gin.Context) (*model.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    http.StatusUnauthorized,
			"message": "User not found in context",
		})
		return nil, false
	}

	user, ok := userVal.(*model.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to get user profile",
		})
		return nil, false
	}
	return user, true
}
