// Package testutil 提供测试用的内存数据库与数据构造函数
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Owenun/Windy/internal/database"
	"github.com/Owenun/Windy/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB 创建一个独立的内存SQLite库并完成建表
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 打开外键约束，级联删除与MySQL一致
	dsn := fmt.Sprintf("file:windy_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 单连接，事务内外不会互相加锁
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.InitTables(db))
	return db
}

// CreateUser 创建用户，密码为 password
func CreateUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Username: username, Password: string(hash), Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateCategory 创建分类
func CreateCategory(t *testing.T, db *gorm.DB, owner *model.User, name string, status model.Status, isNav bool) *model.Category {
	t.Helper()

	category := &model.Category{Name: name, Status: status, IsNav: isNav, OwnerID: owner.ID}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateTag 创建标签
func CreateTag(t *testing.T, db *gorm.DB, owner *model.User, name string, status model.Status) *model.Tag {
	t.Helper()

	tag := &model.Tag{Name: name, Status: status, OwnerID: owner.ID}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreatePost 创建文章并关联标签
func CreatePost(t *testing.T, db *gorm.DB, owner *model.User, category *model.Category, title string, status model.PostStatus, pv int, tags ...*model.Tag) *model.Post {
	t.Helper()

	post := &model.Post{
		Title:      title,
		Content:    "# " + title,
		Status:     status,
		CategoryID: category.ID,
		OwnerID:    owner.ID,
		PV:         pv,
		PU:         1,
	}
	require.NoError(t, db.Omit("Tags", "Category", "Owner").Create(post).Error)
	for _, tag := range tags {
		require.NoError(t, db.Create(&model.PostTag{PostID: post.ID, TagID: tag.ID}).Error)
	}
	return post
}
