package service

import (
	"context"
	"time"

	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/model"
	"gorm.io/gorm"
)

// LogEntryService 后台操作日志，接口只读，过期日志由命令行清理
type LogEntryService struct {
	db       *gorm.DB
	pageSize int
}

// NewLogEntryService 创建操作日志服务实例
func NewLogEntryService(db *gorm.DB, pageSize int) *LogEntryService {
	return &LogEntryService{db: db, pageSize: pageSize}
}

// List 操作日志列表，最新的在前
func (s *LogEntryService) List(ctx context.Context, req *dto.LogEntryListRequest) (*dto.LogEntryListResponse, error) {
	page, size := normalizeAdminPage(req.Page, req.PageSize, s.pageSize)

	q := s.db.WithContext(ctx).Model(&model.LogEntry{})
	if req.ActionFlag != nil {
		q = q.Where("action_flag = ?", *req.ActionFlag)
	}

	var entries []model.LogEntry
	total, err := fetchPage(q, page, size, &entries, "action_time DESC, id DESC", "User")
	if err != nil {
		return nil, err
	}

	list := make([]dto.LogEntryItem, 0, len(entries))
	for _, e := range entries {
		item := dto.LogEntryItem{
			ID:            e.ID,
			ObjectRepr:    e.ObjectRepr,
			ObjectID:      e.ObjectID,
			ContentType:   e.ContentType,
			ActionFlag:    int(e.ActionFlag),
			ActionLabel:   e.ActionFlag.Label(),
			ChangeMessage: e.ChangeMessage,
			ActionTime:    e.ActionTime.Format(dto.TimeLayout),
		}
		if e.User != nil {
			item.User = e.User.Username
		}
		list = append(list, item)
	}

	return &dto.LogEntryListResponse{
		Page: dto.Page{Number: page, Size: size, Total: total},
		List: list,
	}, nil
}

// Purge 删除before之前的操作日志
func (s *LogEntryService) Purge(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("action_time < ?", before).Delete(&model.LogEntry{})
	return res.RowsAffected, res.Error
}
