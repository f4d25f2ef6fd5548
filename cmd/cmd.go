package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/database"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/internal/router"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "windy",
	Short: "Windy博客服务",
	Long:  `Windy博客后端，提供前台文章浏览接口和按作者隔离的后台管理接口`,
}

// serveCmd 启动服务命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	Long:  `启动Windy博客的HTTP服务器`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	// 添加全局标志
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config", "配置文件路径")

	// 添加子命令
	rootCmd.AddCommand(serveCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initializeSystem 初始化配置、日志和数据库
func initializeSystem() (*gorm.DB, error) {
	// 初始化配置
	if err := config.Init(configPath); err != nil {
		return nil, fmt.Errorf("配置初始化失败: %w", err)
	}

	// 初始化日志
	if err := logger.Init(); err != nil {
		return nil, fmt.Errorf("日志初始化失败: %w", err)
	}

	// 初始化MySQL数据库
	db, err := database.InitMySQL(&config.GetConfig().MySQL)
	if err != nil {
		return nil, err
	}

	// 初始化数据库表
	if err := model.InitTables(db); err != nil {
		return nil, fmt.Errorf("初始化数据库表失败: %w", err)
	}
	return db, nil
}

// initializeRedis 按配置连接Redis，未启用缓存时返回nil
func initializeRedis(cfg *config.Config) *redis.Client {
	if !cfg.Cache.Enabled {
		return nil
	}
	client, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 导航缓存不可用时直接查库
		logger.Warn("Redis不可用，导航缓存已关闭", zap.Error(err))
		return nil
	}
	return client
}

// startServer 启动HTTP服务
func startServer() {
	// 初始化系统
	db, err := initializeSystem()
	if err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.GetConfig()
	rdb := initializeRedis(cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	// 配置文件变化时调整日志级别
	config.Watch(func(c *config.Config, e fsnotify.Event) {
		logger.SetLevel(c.Log.Level)
		logger.Info("配置已重新加载", zap.String("file", e.Name), zap.String("log_level", c.Log.Level))
	})

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 初始化路由
	r := router.New(router.Options{DB: db, Redis: rdb, Config: cfg})

	// 启动HTTP服务
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	// 优雅关闭
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	logger.Info("服务已启动", zap.String("addr", srv.Addr))

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("关闭服务...")

	// 设置关闭超时
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务关闭异常", zap.Error(err))
		return
	}

	logger.Info("服务已关闭")
}
