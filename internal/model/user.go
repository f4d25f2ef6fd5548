package model

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 用户模型
type User struct {
	Base
	Username string `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否可以进入后台
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
