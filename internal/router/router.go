package router

import (
	"time"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/controller"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/middleware"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/auth"
	"github.com/Owenun/Windy/pkg/cache"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options 路由依赖
type Options struct {
	DB     *gorm.DB
	Redis  *redis.Client // 为nil时导航不走缓存
	Config *config.Config
}

// apis 路由用到的控制器
type apis struct {
	user     *controller.UserApi
	blog     *controller.BlogApi
	category *controller.CategoryApi
	tag      *controller.TagApi
	post     *controller.PostApi
	logEntry *controller.LogEntryApi
	tokens   *auth.Manager
}

// New 创建带中间件和全部路由的引擎
func New(opts Options) *gin.Engine {
	r := gin.New()

	// 使用中间件
	r.Use(gin.Recovery())
	r.Use(logger.GinLogger())
	r.Use(middleware.Cors())

	Setup(r, opts)
	return r
}

// Setup 设置API路由
func Setup(r *gin.Engine, opts Options) {
	a := build(opts)

	// API 路由组
	api := r.Group("/api")

	// 用户相关路由
	setupUserRoutes(api, a)

	// 前台页面路由
	setupBlogRoutes(api, a)

	// 后台管理路由
	setupAdminRoutes(api, a)
}

// build 组装服务与控制器
func build(opts Options) *apis {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := logger.GetSugaredLogger()

	// 显式判断，避免把nil的*RedisCache当作非nil接口
	var navCache cache.Cache
	if opts.Redis != nil {
		navCache = cache.NewRedisCache(opts.Redis)
	}
	navs := cache.NewLoader(navCache, time.Duration(cfg.Cache.NavTTLSecs)*time.Second)

	tokens := auth.NewManager(cfg.JWT)
	pageSize := cfg.Blog.AdminPageSize

	return &apis{
		user:     controller.NewUserApi(service.NewUserService(opts.DB, tokens, log)),
		blog:     controller.NewBlogApi(service.NewBlogService(opts.DB, navs, service.NewSideBarService(opts.DB), cfg.Blog, log)),
		category: controller.NewCategoryApi(service.NewCategoryService(opts.DB, navs, pageSize, log)),
		tag:      controller.NewTagApi(service.NewTagService(opts.DB, pageSize, log)),
		post:     controller.NewPostApi(service.NewPostService(opts.DB, pageSize, log)),
		logEntry: controller.NewLogEntryApi(service.NewLogEntryService(opts.DB, pageSize)),
		tokens:   tokens,
	}
}

// setupUserRoutes 设置用户相关路由
func setupUserRoutes(api *gin.RouterGroup, a *apis) {
	// 公开路由
	userRoutes := api.Group("/users")
	{
		// 登录
		userRoutes.POST("/login", a.user.Login)
	}

	// 需要认证的路由
	authUserRoutes := api.Group("/users", middleware.JWTAuth(a.tokens))
	{
		// 获取当前用户信息
		authUserRoutes.GET("/me", a.user.GetUserInfo)
	}
}

// setupBlogRoutes 设置前台页面路由
func setupBlogRoutes(api *gin.RouterGroup, a *apis) {
	api.GET("", a.blog.Index)
	api.GET("/posts", a.blog.PostList)
	api.GET("/posts/hot", a.blog.HotPosts)
	api.GET("/category/:category_id", a.blog.Category)
	api.GET("/tag/:tag_id", a.blog.Tag)
	api.GET("/post/:post_id", a.blog.PostDetail)
}

// setupAdminRoutes 设置后台管理路由，只有管理员可以访问
func setupAdminRoutes(api *gin.RouterGroup, a *apis) {
	admin := api.Group("/admin", middleware.AdminAuth(a.tokens))

	categoryRoutes := admin.Group("/categories")
	{
		categoryRoutes.GET("", a.category.List)
		categoryRoutes.POST("", a.category.Create)
		categoryRoutes.GET("/meta", a.category.Meta)
		categoryRoutes.GET("/:id", a.category.Get)
		categoryRoutes.PUT("/:id", a.category.Update)
		categoryRoutes.DELETE("/:id", a.category.Delete)
	}

	tagRoutes := admin.Group("/tags")
	{
		tagRoutes.GET("", a.tag.List)
		tagRoutes.POST("", a.tag.Create)
		tagRoutes.GET("/meta", a.tag.Meta)
		tagRoutes.GET("/:id", a.tag.Get)
		tagRoutes.PUT("/:id", a.tag.Update)
		tagRoutes.DELETE("/:id", a.tag.Delete)
	}

	postRoutes := admin.Group("/posts")
	{
		postRoutes.GET("", a.post.List)
		postRoutes.POST("", a.post.Create)
		postRoutes.GET("/meta", a.post.Meta)
		postRoutes.GET("/category-lookups", a.post.CategoryLookups)
		postRoutes.GET("/:id", a.post.Get)
		postRoutes.PUT("/:id", a.post.Update)
		postRoutes.DELETE("/:id", a.post.Delete)
	}

	// 操作日志只读
	admin.GET("/logs", a.logEntry.List)
}
