package controller

import (
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BlogApi 前台页面API控制器
type BlogApi struct {
	logger      *zap.SugaredLogger
	blogService *service.BlogService
}

// NewBlogApi 创建前台API控制器
func NewBlogApi(blogService *service.BlogService) *BlogApi {
	return &BlogApi{
		logger:      logger.GetSugaredLogger(),
		blogService: blogService,
	}
}

// Index 首页
func (api *BlogApi) Index(c *gin.Context) {
	out, page, err := api.blogService.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		handleServiceError(c, api.logger, "获取首页", err)
		return
	}
	response.SuccessPage(c, "获取成功", out, pageMeta(page))
}

// PostList 文章列表，每页一篇
func (api *BlogApi) PostList(c *gin.Context) {
	out, page, err := api.blogService.PostList(c.Request.Context(), c.Query("page"))
	if err != nil {
		handleServiceError(c, api.logger, "获取文章列表", err)
		return
	}
	response.SuccessPage(c, "获取成功", out, pageMeta(page))
}

// HotPosts 最热文章
func (api *BlogApi) HotPosts(c *gin.Context) {
	out, page, err := api.blogService.HotPage(c.Request.Context(), c.Query("page"))
	if err != nil {
		handleServiceError(c, api.logger, "获取最热文章", err)
		return
	}
	response.SuccessPage(c, "获取成功", out, pageMeta(page))
}

// Category 分类页
func (api *BlogApi) Category(c *gin.Context) {
	id, ok := parseID(c, "category_id")
	if !ok {
		return
	}

	out, page, err := api.blogService.CategoryPosts(c.Request.Context(), id, c.Query("page"))
	if err != nil {
		handleServiceError(c, api.logger, "获取分类文章", err)
		return
	}
	response.SuccessPage(c, "获取成功", out, pageMeta(page))
}

// Tag 标签页
func (api *BlogApi) Tag(c *gin.Context) {
	id, ok := parseID(c, "tag_id")
	if !ok {
		return
	}

	out, page, err := api.blogService.TagPosts(c.Request.Context(), id, c.Query("page"))
	if err != nil {
		handleServiceError(c, api.logger, "获取标签文章", err)
		return
	}
	response.SuccessPage(c, "获取成功", out, pageMeta(page))
}

// PostDetail 文章详情
func (api *BlogApi) PostDetail(c *gin.Context) {
	id, ok := parseID(c, "post_id")
	if !ok {
		return
	}

	out, err := api.blogService.PostDetail(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, api.logger, "获取文章详情", err)
		return
	}
	response.Success(c, "获取成功", out)
}
