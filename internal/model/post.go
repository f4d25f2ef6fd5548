package model

import (
	"time"
)

// Post 文章模型，默认按ID升序
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Desc        string     `gorm:"type:varchar(1024);not null;default:''" json:"desc"`
	Content     string     `gorm:"type:longtext" json:"content"` // 正文必须为Markdown格式
	Status      PostStatus `gorm:"type:int;not null;index" json:"status"`
	CategoryID  uint       `gorm:"not null;index" json:"category_id"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	CreatedTime time.Time  `gorm:"autoCreateTime;<-:create" json:"created_time"`
	PV          int        `gorm:"column:pv;not null;default:1" json:"pv"` // 访问量
	PU          int        `gorm:"column:pu;not null;default:1" json:"pu"` // 访客数

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Owner    *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Tags     []Tag     `gorm:"many2many:post_tags;" json:"tags,omitempty"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

func (p *Post) ContentType() string { return "post" }
func (p *Post) PrimaryKey() uint    { return p.ID }
func (p *Post) SetOwner(userID uint) {
	p.OwnerID = userID
	p.Owner = nil
}
func (p *Post) String() string { return p.Title }
