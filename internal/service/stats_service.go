package service

import (
	"context"

	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/model"
	"gorm.io/gorm"
)

// StatsService 内容统计
type StatsService struct {
	db *gorm.DB
}

// NewStatsService 创建统计服务实例
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Content 各类内容按状态的数量
func (s *StatsService) Content(ctx context.Context) (*dto.ContentStats, error) {
	db := s.db.WithContext(ctx)
	stats := &dto.ContentStats{}

	if err := db.Model(&model.User{}).Count(&stats.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.LogEntry{}).Count(&stats.LogEntries).Error; err != nil {
		return nil, err
	}

	var err error
	if stats.Categories, err = countByStatus(db, &model.Category{}, func(s int) string { return model.Status(s).Label() }); err != nil {
		return nil, err
	}
	if stats.Tags, err = countByStatus(db, &model.Tag{}, func(s int) string { return model.Status(s).Label() }); err != nil {
		return nil, err
	}
	if stats.Posts, err = countByStatus(db, &model.Post{}, func(s int) string { return model.PostStatus(s).Label() }); err != nil {
		return nil, err
	}
	return stats, nil
}

func countByStatus(db *gorm.DB, m interface{}, label func(int) string) ([]dto.StatusCount, error) {
	var rows []dto.StatusCount
	if err := db.Model(m).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Label = label(rows[i].Status)
	}
	return rows, nil
}
