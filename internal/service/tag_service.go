package service

import (
	"context"

	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TagService 后台标签管理
type TagService struct {
	admin    *OwnerAdmin[model.Tag, *model.Tag]
	pageSize int
	logger   *zap.SugaredLogger
}

// NewTagService 创建标签服务实例
func NewTagService(db *gorm.DB, pageSize int, log *zap.SugaredLogger) *TagService {
	return &TagService{
		admin:    NewOwnerAdmin[model.Tag](db),
		pageSize: pageSize,
		logger:   log,
	}
}

// List 当前用户的标签列表，按ID倒序
func (s *TagService) List(ctx context.Context, userID uint, req *dto.AdminListRequest) (*dto.TagAdminListResponse, error) {
	page, size := normalizeAdminPage(req.Page, req.PageSize, s.pageSize)

	q := s.admin.Queryset(ctx, userID)
	if req.Status != nil {
		q = q.Where("tags.status = ?", *req.Status)
	}

	var tags []model.Tag
	total, err := fetchPage(q, page, size, &tags, "tags.id DESC", "Owner")
	if err != nil {
		return nil, err
	}

	list := make([]dto.TagAdminItem, 0, len(tags))
	for i := range tags {
		list = append(list, tagItem(&tags[i]))
	}

	return &dto.TagAdminListResponse{
		Page: dto.Page{Number: page, Size: size, Total: total},
		List: list,
	}, nil
}

// Get 标签详情
func (s *TagService) Get(ctx context.Context, userID, id uint) (*dto.TagAdminItem, error) {
	tag, err := s.admin.Get(ctx, userID, id, "Owner")
	if err != nil {
		return nil, notFoundAs(err, ErrTagNotFound)
	}
	item := tagItem(tag)
	return &item, nil
}

// Create 创建标签
func (s *TagService) Create(ctx context.Context, userID uint, req *dto.TagForm) (*dto.TagAdminItem, error) {
	status, err := formStatus(req.Status, model.StatusNormal)
	if err != nil {
		return nil, err
	}
	tag := &model.Tag{
		Name:   req.Name,
		Status: status,
	}
	if err := s.admin.Save(ctx, userID, tag, SaveOptions{}); err != nil {
		return nil, err
	}

	s.logger.Infof("创建标签: id=%d name=%s owner=%d", tag.ID, tag.Name, userID)
	return s.Get(ctx, userID, tag.ID)
}

// Update 更新标签
func (s *TagService) Update(ctx context.Context, userID, id uint, req *dto.TagForm) (*dto.TagAdminItem, error) {
	tag, err := s.admin.Get(ctx, userID, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTagNotFound)
	}

	status, err := formStatus(req.Status, tag.Status)
	if err != nil {
		return nil, err
	}

	var changed []string
	if tag.Name != req.Name {
		changed = append(changed, "name")
	}
	if tag.Status != status {
		changed = append(changed, "status")
	}
	tag.Name = req.Name
	tag.Status = status

	if err := s.admin.Save(ctx, userID, tag, SaveOptions{
		Change:  true,
		Columns: []string{"name", "status"},
		Changed: changed,
	}); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Delete 软删除标签
func (s *TagService) Delete(ctx context.Context, userID, id uint) error {
	tag, err := s.admin.Get(ctx, userID, id)
	if err != nil {
		return notFoundAs(err, ErrTagNotFound)
	}
	if err := s.admin.SoftDelete(ctx, userID, tag, model.StatusDeleted); err != nil {
		return err
	}

	s.logger.Infof("删除标签: id=%d owner=%d", id, userID)
	return nil
}

// Meta 标签管理页配置
func (s *TagService) Meta() dto.ScreenMeta {
	return dto.ScreenMeta{
		ListDisplay:      []string{"name", "status", "created_time", "owner"},
		ListDisplayLinks: []string{"name"},
		ListFilter:       []string{"status"},
		Fields:           []string{"name", "status"},
	}
}

func tagItem(t *model.Tag) dto.TagAdminItem {
	item := dto.TagAdminItem{
		ID:          t.ID,
		Name:        t.Name,
		Status:      int(t.Status),
		StatusLabel: t.Status.Label(),
		CreatedTime: t.CreatedTime.Format(dto.TimeLayout),
	}
	if t.Owner != nil {
		item.Owner = t.Owner.Username
	}
	return item
}
