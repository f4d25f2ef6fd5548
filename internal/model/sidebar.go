package model

import "time"

// SideBarStatus 侧边栏展示状态
type SideBarStatus int

const (
	SideBarHide SideBarStatus = 0
	SideBarShow SideBarStatus = 1
)

// SideBarDisplay 侧边栏展示类型
type SideBarDisplay int

const (
	DisplayHTML    SideBarDisplay = 1 // 自定义HTML
	DisplayLatest  SideBarDisplay = 2 // 最新文章
	DisplayHot     SideBarDisplay = 3 // 最热文章
	DisplayComment SideBarDisplay = 4 // 最近评论
)

// SideBar 侧边栏，由配置模块维护，博客只读取
type SideBar struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(50);not null" json:"title"`
	DisplayType SideBarDisplay `gorm:"type:int;not null" json:"display_type"`
	Content     string         `gorm:"type:varchar(500)" json:"content"`
	Status      SideBarStatus  `gorm:"type:int;not null;index" json:"status"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	CreatedTime time.Time      `gorm:"autoCreateTime;<-:create" json:"created_time"`
}

// TableName 指定表名
func (SideBar) TableName() string {
	return "sidebars"
}
