package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brokerdesk/backend/internal/service"
)

const (
	contextKeyUserID   = "user_id"
	contextKeyTenantID = "tenant_id"
	contextKeyRole     = "role"
)

// AuthMiddleware 校验 Bearer 令牌并把身份写入请求上下文
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			return
		}
		claims, err := authService.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(contextKeyUserID, claims.Subject)
		c.Set(contextKeyTenantID, claims.TenantID)
		c.Set(contextKeyRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth 有令牌则解析身份，无令牌或令牌无效都放行。
// 用于落地页解析这类登录与否行为不同的公开接口。
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := authService.ParseToken(token); err == nil {
				c.Set(contextKeyUserID, claims.Subject)
				c.Set(contextKeyTenantID, claims.TenantID)
				c.Set(contextKeyRole, claims.Role)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func currentUserID(c *gin.Context) string {
	return c.GetString(contextKeyUserID)
}

func currentTenantID(c *gin.Context) string {
	return c.GetString(contextKeyTenantID)
}
