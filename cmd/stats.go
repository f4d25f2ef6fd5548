package cmd

import (
	"context"
	"fmt"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/cache"
	"github.com/spf13/cobra"
)

// statsCmd 统计命令
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "统计信息命令",
	Long:  `显示内容统计和数据库连接状态`,
}

// contentStatsCmd 内容统计命令
var contentStatsCmd = &cobra.Command{
	Use:   "content",
	Short: "内容统计信息",
	Long:  `按状态显示分类、标签、文章数量`,
	Run: func(cmd *cobra.Command, args []string) {
		showContentStats()
	},
}

// dbStatusCmd 数据库状态命令
var dbStatusCmd = &cobra.Command{
	Use:   "db-status",
	Short: "数据库状态",
	Long:  `显示MySQL和Redis连接状态`,
	Run: func(cmd *cobra.Command, args []string) {
		showDatabaseStatus()
	},
}

func init() {
	// 添加统计相关子命令
	statsCmd.AddCommand(contentStatsCmd)
	statsCmd.AddCommand(dbStatusCmd)

	// 将统计命令添加到根命令
	rootCmd.AddCommand(statsCmd)
}

// showContentStats 显示内容统计信息
func showContentStats() {
	db := mustInit()

	stats, err := service.NewStatsService(db).Content(context.Background())
	if err != nil {
		fmt.Printf("获取统计信息失败: %v\n", err)
		return
	}

	fmt.Println("=== 内容统计 ===")
	fmt.Printf("用户数: %d\n", stats.Users)
	printStatusCounts("分类", stats.Categories)
	printStatusCounts("标签", stats.Tags)
	printStatusCounts("文章", stats.Posts)
	fmt.Printf("操作日志: %d\n", stats.LogEntries)
}

func printStatusCounts(name string, counts []dto.StatusCount) {
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	fmt.Printf("%s: %d\n", name, total)
	for _, c := range counts {
		fmt.Printf("  - %s: %d\n", c.Label, c.Count)
	}
}

// showDatabaseStatus 显示数据库状态
func showDatabaseStatus() {
	db := mustInit()

	fmt.Println("=== 数据库状态 ===")

	// MySQL状态
	sqlDB, err := db.DB()
	if err != nil {
		fmt.Printf("MySQL: 连接失败 - %v\n", err)
	} else if err := sqlDB.Ping(); err != nil {
		fmt.Printf("MySQL: 连接失败 - %v\n", err)
	} else {
		stats := sqlDB.Stats()
		fmt.Printf("MySQL: 连接正常\n")
		fmt.Printf("  - 最大连接数: %d\n", stats.MaxOpenConnections)
		fmt.Printf("  - 当前连接数: %d\n", stats.OpenConnections)
		fmt.Printf("  - 空闲连接数: %d\n", stats.Idle)
		fmt.Printf("  - 使用中连接数: %d\n", stats.InUse)
	}

	// Redis状态
	cfg := config.GetConfig()
	if !cfg.Cache.Enabled {
		fmt.Println("Redis: 未启用导航缓存")
		return
	}
	rdb := initializeRedis(cfg)
	if rdb == nil {
		fmt.Println("Redis: 连接失败")
		return
	}
	defer rdb.Close()

	pong, err := rdb.Ping(context.Background()).Result()
	if err != nil {
		fmt.Printf("Redis: 连接失败 - %v\n", err)
		return
	}
	fmt.Printf("Redis: 连接正常 - %s\n", pong)
	if n, err := rdb.Exists(context.Background(), cache.NavKey).Result(); err == nil {
		fmt.Printf("  - 导航缓存: %t\n", n > 0)
	}
}
