package database

import (
	"fmt"
	"time"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/avast/retry-go"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogLevel 将配置中的日志级别映射为gorm日志级别
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// GormConfig 返回项目统一的GORM配置
func GormConfig(level string) *gorm.Config {
	return &gorm.Config{
		// 保留外键约束，文章随分类、作者级联删除
		DisableForeignKeyConstraintWhenMigrating: false,
		Logger:                                   gormlogger.Default.LogMode(gormLogLevel(level)),
	}
}

// InitMySQL 初始化MySQL数据库连接
func InitMySQL(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	conn, err := gorm.Open(mysql.Open(cfg.DSN()), GormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("连接MySQL数据库失败: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接池失败: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	// 默认连接最大生命周期为一小时
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 数据库容器可能晚于服务启动，重试几次
	err = retry.Do(
		sqlDB.Ping,
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("MySQL连接失败，准备重试", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	logger.Info("MySQL数据库连接成功", zap.String("host", cfg.Host), zap.String("database", cfg.Database))
	return conn, nil
}
