package controller

import (
	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryApi 后台分类API控制器
type CategoryApi struct {
	logger          *zap.SugaredLogger
	categoryService *service.CategoryService
}

// NewCategoryApi 创建分类API控制器
func NewCategoryApi(categoryService *service.CategoryService) *CategoryApi {
	return &CategoryApi{
		logger:          logger.GetSugaredLogger(),
		categoryService: categoryService,
	}
}

// List 当前用户的分类列表
func (api *CategoryApi) List(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := api.categoryService.List(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, api.logger, "获取分类列表", err)
		return
	}
	response.SuccessPage(c, "获取成功", resp.List, pageMeta(resp.Page))
}

// Get 分类详情
func (api *CategoryApi) Get(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := api.categoryService.Get(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, api.logger, "获取分类", err)
		return
	}
	response.Success(c, "获取成功", detail)
}

// Create 创建分类
func (api *CategoryApi) Create(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CategoryForm
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	detail, err := api.categoryService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, api.logger, "创建分类", err)
		return
	}
	response.Created(c, "创建成功", detail)
}

// Update 更新分类
func (api *CategoryApi) Update(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CategoryForm
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	detail, err := api.categoryService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(c, api.logger, "更新分类", err)
		return
	}
	response.Success(c, "更新成功", detail)
}

// Delete 删除分类
func (api *CategoryApi) Delete(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := api.categoryService.Delete(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, api.logger, "删除分类", err)
		return
	}
	response.Success(c, "删除成功", nil)
}

// Meta 分类管理页配置
func (api *CategoryApi) Meta(c *gin.Context) {
	response.Success(c, "获取成功", api.categoryService.Meta())
}
