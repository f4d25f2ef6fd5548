package model

import (
	"fmt"

	"gorm.io/gorm"
)

// 需要自动迁移的模型列表
var models = []interface{}{
	&User{},
	&Category{},
	&Tag{},
	&Post{},
	&PostTag{},
	&SideBar{},
	&LogEntry{},
}

// InitTables 初始化数据库表
func InitTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Post{}, "Tags", &PostTag{}); err != nil {
		return fmt.Errorf("注册文章标签关联表失败: %w", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("自动迁移数据库表失败: %w", err)
	}
	return nil
}

// TableNames 所有业务表名
func TableNames() []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		if t, ok := m.(interface{ TableName() string }); ok {
			names = append(names, t.TableName())
		}
	}
	return names
}
