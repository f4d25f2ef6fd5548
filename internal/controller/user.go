package controller

import (
	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserApi 用户API控制器
type UserApi struct {
	logger      *zap.SugaredLogger
	userService *service.UserService
}

// NewUserApi 创建用户API控制器
func NewUserApi(userService *service.UserService) *UserApi {
	return &UserApi{
		logger:      logger.GetSugaredLogger(),
		userService: userService,
	}
}

// Login 用户登录
func (api *UserApi) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := api.userService.Login(c.Request.Context(), &req)
	if err != nil {
		api.logger.Warnf("用户登录失败: username=%s err=%v", req.Username, err)
		handleServiceError(c, api.logger, "登录", err)
		return
	}
	response.Success(c, "登录成功", resp)
}

// GetUserInfo 获取当前用户信息
func (api *UserApi) GetUserInfo(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	user, err := api.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, api.logger, "获取用户信息", err)
		return
	}
	response.Success(c, "获取成功", service.UserInfo(user))
}
