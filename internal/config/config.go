package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App   AppConfig      `mapstructure:"app"`
	MySQL DatabaseConfig `mapstructure:"mysql"`
	Redis RedisConfig    `mapstructure:"redis"`
	Log   LogConfig      `mapstructure:"log"`
	JWT   JWTConfig      `mapstructure:"jwt"`
	Blog  BlogConfig     `mapstructure:"blog"`
	Cache CacheConfig    `mapstructure:"cache"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name string `mapstructure:"name"`
	Mode string `mapstructure:"mode"`
	Port int    `mapstructure:"port"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	SecretKey           string `mapstructure:"secret_key"`
	AccessExpireSeconds int    `mapstructure:"access_expire_seconds"`
	Issuer              string `mapstructure:"issuer"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// Addr 获取Redis地址
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// BlogConfig 博客展示配置
type BlogConfig struct {
	IndexPageSize    int `mapstructure:"index_page_size"`     // 首页每页文章数
	PostListPageSize int `mapstructure:"post_list_page_size"` // 文章列表每页文章数
	HotPageSize      int `mapstructure:"hot_page_size"`       // 最热文章每页文章数
	AdminPageSize    int `mapstructure:"admin_page_size"`     // 后台列表默认每页条数
}

// CacheConfig 导航缓存配置
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	NavTTLSecs int  `mapstructure:"nav_ttl_seconds"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
	// 配置Viper实例
	viperInstance *viper.Viper
	mu            sync.RWMutex
)

// Default 返回带默认值的配置，未读取配置文件时使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "windy")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.port", 8080)
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.max_open_conns", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.access_expire_seconds", 7200)
	v.SetDefault("jwt.issuer", "windy")
	v.SetDefault("blog.index_page_size", 5)
	v.SetDefault("blog.post_list_page_size", 1)
	v.SetDefault("blog.hot_page_size", 5)
	v.SetDefault("blog.admin_page_size", 20)
	v.SetDefault("cache.nav_ttl_seconds", 600)
}

// Init 初始化配置
func Init(configPath string) error {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}

	mu.Lock()
	GlobalConfig = &config
	viperInstance = v
	mu.Unlock()
	return nil
}

// Watch 监听配置文件变化，重新解析后回调
func Watch(onChange func(cfg *Config, e fsnotify.Event)) {
	mu.RLock()
	v := viperInstance
	mu.RUnlock()
	if v == nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		var config Config
		if err := v.Unmarshal(&config); err != nil {
			return
		}
		mu.Lock()
		GlobalConfig = &config
		mu.Unlock()
		if onChange != nil {
			onChange(&config, e)
		}
	})
	v.WatchConfig()
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return GlobalConfig
}
