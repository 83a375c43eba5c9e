package middleware

import (
	"net/http"

	"github.com/NabievDev/NewPeople-sub000/internal/model"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 只放行管理员。必须挂在 AuthMiddleware 之后，
// 因为它依赖上下文里的 user。
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			abortJSON(c, http.StatusUnauthorized, "User not found in context")
			return
		}
		user, ok := userVal.(*model.User)
		if !ok {
			abortJSON(c, http.StatusInternalServerError, "Failed to get user profile")
			return
		}
		if user.Role != model.RoleAdmin {
			abortJSON(c, http.StatusForbidden, "Forbidden: Only admin can access this resource")
			return
		}
		c.Next()
	}
}
