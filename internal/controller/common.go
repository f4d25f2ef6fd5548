package controller

import (
	"errors"
	"strconv"

	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/middleware"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getUserIDFromContext 从上下文中获取用户ID
func getUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		return 0, errors.New("用户未登录")
	}
	return userID, nil
}

// actingUser 当前操作的用户，未登录时已写出401
func actingUser(c *gin.Context) (uint, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, err.Error(), err)
		return 0, false
	}
	return userID, true
}

// parseID 解析路径中的数字ID，非数字时返回404
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.NotFound(c, "页面不存在", err)
		return 0, false
	}
	return uint(id), true
}

// pageMeta 分页结果转为响应元数据
func pageMeta(p dto.Page) response.PageMeta {
	return response.NewPageMeta(p.Number, p.Size, p.Total)
}

// 业务错误对应的提示
var notFoundMessages = []struct {
	err     error
	message string
}{
	{service.ErrPageNotFound, "页码无效"},
	{service.ErrCategoryNotFound, "分类不存在"},
	{service.ErrTagNotFound, "标签不存在"},
	{service.ErrPostNotFound, "文章不存在"},
	{service.ErrUserNotFound, "用户不存在"},
}

// handleServiceError 把服务层错误映射为HTTP响应
func handleServiceError(c *gin.Context, log *zap.SugaredLogger, action string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		for _, m := range notFoundMessages {
			if errors.Is(err, m.err) {
				response.NotFound(c, m.message, err)
				return
			}
		}
		response.NotFound(c, "记录不存在", err)
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidTag),
		errors.Is(err, service.ErrInvalidInlinePost),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrUsernameTaken):
		response.BadRequest(c, err.Error(), err)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error(), err)
	default:
		log.Errorf("%s失败: %v", action, err)
		response.InternalServerError(c, action+"失败", err)
	}
}
