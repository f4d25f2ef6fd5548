package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cleanupDays int

// databaseCmd 数据库管理命令
var databaseCmd = &cobra.Command{
	Use:   "db",
	Short: "数据库管理命令",
	Long:  `数据库管理相关的命令，包括建表、导入导出、清理操作日志`,
}

// initTablesCmd 初始化数据库表命令
// 示例：./windy db init-tables
var initTablesCmd = &cobra.Command{
	Use:   "init-tables",
	Short: "初始化数据库表",
	Run: func(cmd *cobra.Command, args []string) {
		initializeTables()
	},
}

// exportMySQLCmd 导出MySQL数据命令
// 示例：./windy db export-mysql posts posts.json
var exportMySQLCmd = &cobra.Command{
	Use:   "export-mysql [table] [file]",
	Short: "导出MySQL数据",
	Long:  `导出MySQL表数据到JSON文件`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exportMySQLData(args[0], args[1])
	},
}

// importMySQLCmd 导入MySQL数据命令
// 示例：./windy db import-mysql posts posts.json
var importMySQLCmd = &cobra.Command{
	Use:   "import-mysql [table] [file]",
	Short: "导入MySQL数据",
	Long:  `从JSON文件导入数据到MySQL表`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		importMySQLData(args[0], args[1])
	},
}

// cleanupDBCmd 清理过期操作日志命令
// 示例：./windy db cleanup --days 90
var cleanupDBCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "清理过期的后台操作日志",
	Run: func(cmd *cobra.Command, args []string) {
		cleanupDatabase()
	},
}

func init() {
	cleanupDBCmd.Flags().IntVar(&cleanupDays, "days", 90, "保留最近多少天的操作日志")

	// 添加数据库相关子命令
	databaseCmd.AddCommand(initTablesCmd)
	databaseCmd.AddCommand(exportMySQLCmd)
	databaseCmd.AddCommand(importMySQLCmd)
	databaseCmd.AddCommand(cleanupDBCmd)

	// 将数据库命令添加到根命令
	rootCmd.AddCommand(databaseCmd)
}

// mustInit 初始化系统，失败时退出
func mustInit() *gorm.DB {
	db, err := initializeSystem()
	if err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	return db
}

// checkTable 只允许操作本项目的表
func checkTable(tableName string) bool {
	tables := model.TableNames()
	if slices.Contains(tables, tableName) {
		return true
	}
	fmt.Printf("未知的表 %s，可选: %s\n", tableName, strings.Join(tables, ", "))
	return false
}

// initializeTables 初始化数据库表
func initializeTables() {
	// initializeSystem 中已完成自动迁移
	mustInit()
	fmt.Println("MySQL表初始化成功")
}

// exportMySQLData 导出MySQL数据
func exportMySQLData(tableName, fileName string) {
	if !checkTable(tableName) {
		return
	}
	db := mustInit()

	var data []map[string]interface{}
	if err := db.Table(tableName).Find(&data).Error; err != nil {
		fmt.Printf("导出数据失败: %v\n", err)
		return
	}

	file, err := os.Create(fileName)
	if err != nil {
		fmt.Printf("创建文件失败: %v\n", err)
		return
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Printf("写入文件失败: %v\n", err)
		return
	}

	fmt.Printf("成功导出 %d 条记录到 %s\n", len(data), fileName)
}

// importMySQLData 导入MySQL数据
func importMySQLData(tableName, fileName string) {
	if !checkTable(tableName) {
		return
	}

	file, err := os.Open(fileName)
	if err != nil {
		fmt.Printf("打开文件失败: %v\n", err)
		return
	}
	defer file.Close()

	var data []map[string]interface{}
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		fmt.Printf("解析文件失败: %v\n", err)
		return
	}

	db := mustInit()

	// 使用事务确保数据一致性
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, record := range data {
			if err := tx.Table(tableName).Create(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fmt.Printf("导入数据失败: %v\n", err)
		return
	}

	fmt.Printf("成功导入 %d 条记录到表 %s\n", len(data), tableName)

	if affectsNavCache(tableName) {
		rdb := initializeRedis(config.GetConfig())
		if rdb == nil {
			return
		}
		defer rdb.Close()
		invalidateNavCache(context.Background(), rdb)
		fmt.Println("已清除导航缓存")
	}
}

// affectsNavCache 导入该表后导航缓存是否失效
func affectsNavCache(tableName string) bool {
	return tableName == (model.Category{}).TableName()
}

// invalidateNavCache 删除导航缓存，失败只记日志
func invalidateNavCache(ctx context.Context, rdb *redis.Client) {
	cache.NewLoader(cache.NewRedisCache(rdb), 0).Invalidate(ctx, cache.NavKey)
}

// cleanupDatabase 清理过期的后台操作日志
func cleanupDatabase() {
	if cleanupDays <= 0 {
		fmt.Println("--days 必须大于0")
		return
	}
	db := mustInit()

	logs := service.NewLogEntryService(db, config.GetConfig().Blog.AdminPageSize)
	before := time.Now().AddDate(0, 0, -cleanupDays)
	n, err := logs.Purge(context.Background(), before)
	if err != nil {
		fmt.Printf("清理操作日志失败: %v\n", err)
		return
	}
	fmt.Printf("清理了 %d 条 %s 之前的操作日志\n", n, before.Format("2006-01-02"))
}
