package middleware

import (
	"errors"
	"strings"

	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/pkg/auth"
	"github.com/Owenun/Windy/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = logger.UserIDKey // 请求日志按此键记录操作人
	userRoleKey = "userRole"
)

// bearerToken 从Authorization头中取出令牌
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("请先登录")
	}

	// 检查格式
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || parts[1] == "" {
		return "", errors.New("Authorization格式错误")
	}
	return parts[1], nil
}

// authenticate 校验令牌并把用户信息写入上下文，失败时已写出响应
func authenticate(c *gin.Context, m *auth.Manager) bool {
	token, err := bearerToken(c)
	if err != nil {
		response.Unauthorized(c, err.Error(), nil)
		c.Abort()
		return false
	}

	// 验证token
	claims, err := m.ParseToken(token)
	if err != nil {
		logger.Warnf("无效的令牌: %v", err)
		response.Unauthorized(c, "无效的令牌", err)
		c.Abort()
		return false
	}

	// 将用户ID存入上下文
	c.Set(userIDKey, claims.UserID)
	c.Set(userRoleKey, claims.Role)
	return true
}

// JWTAuth JWT认证中间件
func JWTAuth(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, m) {
			return
		}
		c.Next()
	}
}

// AdminAuth 管理员认证中间件
func AdminAuth(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, m) {
			return
		}

		// 检查是否为管理员
		role, _ := GetUserRole(c)
		if role != model.RoleAdmin {
			response.Forbidden(c, "需要管理员权限", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID 从上下文中获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserRole 从上下文中获取用户角色
func GetUserRole(c *gin.Context) (string, bool) {
	userRole, exists := c.Get(userRoleKey)
	if !exists {
		return "", false
	}
	role, ok := userRole.(string)
	return role, ok
}
