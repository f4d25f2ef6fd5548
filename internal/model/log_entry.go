package model

import "time"

// ActionFlag 后台操作类型
type ActionFlag int

const (
	ActionAddition ActionFlag = 1
	ActionChange   ActionFlag = 2
	ActionDeletion ActionFlag = 3
)

// Label 操作类型展示名称
func (f ActionFlag) Label() string {
	switch f {
	case ActionAddition:
		return "新增"
	case ActionChange:
		return "修改"
	case ActionDeletion:
		return "删除"
	default:
		return "未知"
	}
}

// LogEntry 后台操作日志，只由后台写入
type LogEntry struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ActionTime    time.Time  `gorm:"autoCreateTime;index" json:"action_time"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	ContentType   string     `gorm:"type:varchar(50);not null;index" json:"content_type"`
	ObjectID      string     `gorm:"type:varchar(64)" json:"object_id"`
	ObjectRepr    string     `gorm:"type:varchar(200);not null" json:"object_repr"`
	ActionFlag    ActionFlag `gorm:"type:int;not null" json:"action_flag"`
	ChangeMessage string     `gorm:"type:text" json:"change_message"`

	// 关联
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName 指定表名
func (LogEntry) TableName() string {
	return "log_entries"
}
