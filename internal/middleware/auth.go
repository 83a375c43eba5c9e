package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/internal/service"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 是 JWT 认证中间件，用于保护需要登录才能访问的接口。
// 工作流程：
//  1. 从请求头 Authorization 中提取 Bearer Token
//  2. 验证 Token 签名和有效期
//  3. 检查 token 是否在黑名单中（已登出 token 不再可用）
//  4. 根据 Token 中的用户名查询数据库，确认用户仍然存在且未被停用
//  5. 将 claims 和 user 注入到 Gin 上下文中，后续 Handler 通过 c.Get("user") 获取
func AuthMiddleware(jwtManager *token.JWTManager, userService service.UserService, blacklist token.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtManager == nil || userService == nil || blacklist == nil {
			abortJSON(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		tokenString, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil || claims == nil {
			abortJSON(c, http.StatusUnauthorized, "Invalid or expired access token")
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			log.Error("AuthMiddleware: blacklist lookup failed", err)
			abortJSON(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if revoked {
			abortJSON(c, http.StatusUnauthorized, "Invalid or expired access token")
			return
		}

		// 即使 Token 有效，用户也可能已被删除或停用
		user, err := userService.GetProfile(claims.Username)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				abortJSON(c, http.StatusUnauthorized, "User not found")
				return
			}
			abortJSON(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			abortJSON(c, http.StatusUnauthorized, "User not found")
			return
		}
		if !user.IsActive {
			abortJSON(c, http.StatusForbidden, "User is inactive")
			return
		}

		c.Set("claims", claims)
		c.Set("user", user)
		c.Next()
	}
}

func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

// extractBearerToken 从 Authorization 请求头中提取 Bearer Token。
// 使用 strings.EqualFold 做大小写不敏感比较，兼容 "bearer"、"BEARER" 等写法。
func extractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	if parts[1] == "" {
		return "", errors.New("empty token")
	}
	return parts[1], nil
}
