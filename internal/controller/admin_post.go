package controller

import (
	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostApi 后台文章API控制器
type PostApi struct {
	logger      *zap.SugaredLogger
	postService *service.PostService
}

// NewPostApi 创建文章API控制器
func NewPostApi(postService *service.PostService) *PostApi {
	return &PostApi{
		logger:      logger.GetSugaredLogger(),
		postService: postService,
	}
}

// List 当前用户的文章列表
func (api *PostApi) List(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.PostAdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := api.postService.List(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, api.logger, "获取文章列表", err)
		return
	}
	response.SuccessPage(c, "获取成功", resp.List, pageMeta(resp.Page))
}

// CategoryLookups 分类过滤器选项
func (api *PostApi) CategoryLookups(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	lookups, err := api.postService.CategoryLookups(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, api.logger, "获取分类选项", err)
		return
	}
	response.Success(c, "获取成功", lookups)
}

// Get 文章编辑详情
func (api *PostApi) Get(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := api.postService.Get(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, api.logger, "获取文章", err)
		return
	}
	response.Success(c, "获取成功", post)
}

// Create 创建文章
func (api *PostApi) Create(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.PostForm
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	post, err := api.postService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, api.logger, "创建文章", err)
		return
	}
	response.Created(c, "创建成功", post)
}

// Update 更新文章
func (api *PostApi) Update(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.PostForm
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	post, err := api.postService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(c, api.logger, "更新文章", err)
		return
	}
	response.Success(c, "更新成功", post)
}

// Delete 删除文章
func (api *PostApi) Delete(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := api.postService.Delete(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, api.logger, "删除文章", err)
		return
	}
	response.Success(c, "删除成功", nil)
}

// Meta 文章编辑页配置
func (api *PostApi) Meta(c *gin.Context) {
	response.Success(c, "获取成功", api.postService.Meta())
}
