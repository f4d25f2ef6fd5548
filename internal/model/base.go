package model

import (
	"time"
)

// Base 基础模型
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owned 归属于某个用户的内容模型，后台管理按归属过滤
type Owned interface {
	TableName() string
	// ContentType 审计日志中的对象类型
	ContentType() string
	PrimaryKey() uint
	SetOwner(userID uint)
	// String 审计日志中的对象展示名
	String() string
}
