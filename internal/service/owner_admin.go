package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Owenun/Windy/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedBy 只保留userID名下的记录
func OwnedBy(table string, userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s.owner_id = ?", table), userID)
	}
}

// SaveOptions 保存参数
type SaveOptions struct {
	Change  bool                    // true为修改，false为新增
	Columns []string                // 修改时写入的列，owner_id总会写入
	Changed []string                // 审计日志里记录的变更字段
	After   func(tx *gorm.DB) error // 同一事务内的后续操作，如内联文章、标签关联
}

// OwnerAdmin 后台管理基类：列表只展示当前用户的数据，保存时owner强制为当前用户
type OwnerAdmin[T any, PT interface {
	*T
	model.Owned
}] struct {
	db *gorm.DB
}

// NewOwnerAdmin 创建后台管理基类
func NewOwnerAdmin[T any, PT interface {
	*T
	model.Owned
}](db *gorm.DB) *OwnerAdmin[T, PT] {
	return &OwnerAdmin[T, PT]{db: db}
}

// Table 模型对应的表名
func (a *OwnerAdmin[T, PT]) Table() string {
	return PT(new(T)).TableName()
}

// Queryset 当前用户可见的记录
func (a *OwnerAdmin[T, PT]) Queryset(ctx context.Context, userID uint) *gorm.DB {
	return a.db.WithContext(ctx).Model(PT(new(T))).Scopes(OwnedBy(a.Table(), userID))
}

// Get 获取当前用户名下的一条记录，不存在或属于他人时返回ErrNotFound
func (a *OwnerAdmin[T, PT]) Get(ctx context.Context, userID, id uint, preloads ...string) (PT, error) {
	obj := PT(new(T))
	q := a.Queryset(ctx, userID).Where(fmt.Sprintf("%s.id = ?", a.Table()), id)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(obj).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

// Save 新增或修改记录并写入操作日志，客户端提交的owner一律被覆盖
func (a *OwnerAdmin[T, PT]) Save(ctx context.Context, userID uint, obj PT, opts SaveOptions) error {
	obj.SetOwner(userID)

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flag := model.ActionAddition
		if opts.Change {
			flag = model.ActionChange
			columns := append([]string{"owner_id"}, opts.Columns...)
			if err := tx.Model(obj).Select(columns).Omit(clause.Associations).Updates(obj).Error; err != nil {
				return err
			}
		} else if err := tx.Omit(clause.Associations).Create(obj).Error; err != nil {
			return err
		}

		if opts.After != nil {
			if err := opts.After(tx); err != nil {
				return err
			}
		}

		return writeLogEntry(tx, userID, obj, flag, changeMessage(flag, opts.Changed))
	})
}

// SoftDelete 软删除：把状态列置为删除并写入操作日志
func (a *OwnerAdmin[T, PT]) SoftDelete(ctx context.Context, userID uint, obj PT, deleted interface{}) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(obj).
			Scopes(OwnedBy(a.Table(), userID)).
			Update("status", deleted)
		if res.Error != nil {
			return res.Error
		}
		return writeLogEntry(tx, userID, obj, model.ActionDeletion, changeMessage(model.ActionDeletion, nil))
	})
}

// writeLogEntry 写入后台操作日志
func writeLogEntry(tx *gorm.DB, userID uint, obj model.Owned, flag model.ActionFlag, message string) error {
	repr := obj.String()
	if r := []rune(repr); len(r) > 200 {
		repr = string(r[:200])
	}
	entry := &model.LogEntry{
		UserID:        userID,
		ContentType:   obj.ContentType(),
		ObjectID:      strconv.FormatUint(uint64(obj.PrimaryKey()), 10),
		ObjectRepr:    repr,
		ActionFlag:    flag,
		ChangeMessage: message,
	}
	return tx.Omit(clause.Associations).Create(entry).Error
}

// changeMessage 生成操作日志的变更说明
func changeMessage(flag model.ActionFlag, fields []string) string {
	var msg []map[string]interface{}
	switch flag {
	case model.ActionAddition:
		msg = append(msg, map[string]interface{}{"added": map[string]interface{}{}})
	case model.ActionChange:
		if len(fields) > 0 {
			msg = append(msg, map[string]interface{}{"changed": map[string]interface{}{"fields": fields}})
		}
	case model.ActionDeletion:
		msg = append(msg, map[string]interface{}{"deleted": map[string]interface{}{}})
	}
	if len(msg) == 0 {
		return "[]"
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return "[]"
	}
	return string(data)
}
