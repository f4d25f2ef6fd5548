package model

import (
	"time"
)

// Tag 标签模型
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(10);not null" json:"name"`
	Status      Status    `gorm:"type:int;not null;index" json:"status"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	CreatedTime time.Time `gorm:"autoCreateTime;<-:create" json:"created_time"`

	// 关联
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) ContentType() string { return "tag" }
func (t *Tag) PrimaryKey() uint    { return t.ID }
func (t *Tag) SetOwner(userID uint) {
	t.OwnerID = userID
	t.Owner = nil
}
func (t *Tag) String() string { return t.Name }

// PostTag 文章-标签关联模型
type PostTag struct {
	PostID uint `gorm:"primaryKey;not null" json:"post_id"`
	TagID  uint `gorm:"primaryKey;not null;index" json:"tag_id"`
}

// TableName 指定表名
func (PostTag) TableName() string {
	return "post_tags"
}
