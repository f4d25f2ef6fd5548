package model

import (
	"time"
)

// Category 分类模型
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	Status      Status    `gorm:"type:int;not null;index" json:"status"`
	IsNav       bool      `gorm:"not null" json:"is_nav"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	CreatedTime time.Time `gorm:"autoCreateTime;<-:create" json:"created_time"`

	// 关联
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

func (c *Category) ContentType() string { return "category" }
func (c *Category) PrimaryKey() uint    { return c.ID }
func (c *Category) SetOwner(userID uint) {
	c.OwnerID = userID
	c.Owner = nil
}
func (c *Category) String() string { return c.Name }
