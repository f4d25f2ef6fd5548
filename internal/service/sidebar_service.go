package service

import (
	"context"

	"github.com/Owenun/Windy/internal/model"
	"gorm.io/gorm"
)

// SideBarProvider 侧边栏数据来源
type SideBarProvider interface {
	GetAll(ctx context.Context) ([]model.SideBar, error)
}

// SideBarService 基于数据库的侧边栏
type SideBarService struct {
	db *gorm.DB
}

// NewSideBarService 创建侧边栏服务实例
func NewSideBarService(db *gorm.DB) *SideBarService {
	return &SideBarService{db: db}
}

// GetAll 展示中的侧边栏，按ID升序
func (s *SideBarService) GetAll(ctx context.Context) ([]model.SideBar, error) {
	sidebars := make([]model.SideBar, 0)
	if err := s.db.WithContext(ctx).
		Where("status = ?", model.SideBarShow).
		Order("id").
		Find(&sidebars).Error; err != nil {
		return nil, err
	}
	return sidebars, nil
}
