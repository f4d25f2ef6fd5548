package controller

import (
	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogEntryApi 后台操作日志API控制器，只读
type LogEntryApi struct {
	logger          *zap.SugaredLogger
	logEntryService *service.LogEntryService
}

// NewLogEntryApi 创建操作日志API控制器
func NewLogEntryApi(logEntryService *service.LogEntryService) *LogEntryApi {
	return &LogEntryApi{
		logger:          logger.GetSugaredLogger(),
		logEntryService: logEntryService,
	}
}

// List 操作日志列表
func (api *LogEntryApi) List(c *gin.Context) {
	var req dto.LogEntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := api.logEntryService.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, api.logger, "获取操作日志", err)
		return
	}
	response.SuccessPage(c, "获取成功", resp.List, pageMeta(resp.Page))
}
