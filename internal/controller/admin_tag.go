package controller

import (
	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TagApi 后台标签API控制器
type TagApi struct {
	logger     *zap.SugaredLogger
	tagService *service.TagService
}

// NewTagApi 创建标签API控制器
func NewTagApi(tagService *service.TagService) *TagApi {
	return &TagApi{
		logger:     logger.GetSugaredLogger(),
		tagService: tagService,
	}
}

// List 当前用户的标签列表
func (api *TagApi) List(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := api.tagService.List(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, api.logger, "获取标签列表", err)
		return
	}
	response.SuccessPage(c, "获取成功", resp.List, pageMeta(resp.Page))
}

// Get 标签详情
func (api *TagApi) Get(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tag, err := api.tagService.Get(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, api.logger, "获取标签", err)
		return
	}
	response.Success(c, "获取成功", tag)
}

// Create 创建标签
func (api *TagApi) Create(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.TagForm
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	tag, err := api.tagService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, api.logger, "创建标签", err)
		return
	}
	response.Created(c, "创建成功", tag)
}

// Update 更新标签
func (api *TagApi) Update(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.TagForm
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	tag, err := api.tagService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(c, api.logger, "更新标签", err)
		return
	}
	response.Success(c, "更新成功", tag)
}

// Delete 删除标签
func (api *TagApi) Delete(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := api.tagService.Delete(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, api.logger, "删除标签", err)
		return
	}
	response.Success(c, "删除成功", nil)
}

// Meta 标签管理页配置
func (api *TagApi) Meta(c *gin.Context) {
	response.Success(c, "获取成功", api.tagService.Meta())
}
