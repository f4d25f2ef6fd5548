package service

import (
	"context"
	"fmt"

	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/pkg/cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryService 后台分类管理
type CategoryService struct {
	db       *gorm.DB
	admin    *OwnerAdmin[model.Category, *model.Category]
	navs     *cache.Loader
	pageSize int
	logger   *zap.SugaredLogger
}

// NewCategoryService 创建分类服务实例，navs为nil时不做缓存失效
func NewCategoryService(db *gorm.DB, navs *cache.Loader, pageSize int, log *zap.SugaredLogger) *CategoryService {
	return &CategoryService{
		db:       db,
		admin:    NewOwnerAdmin[model.Category](db),
		navs:     navs,
		pageSize: pageSize,
		logger:   log,
	}
}

// List 当前用户的分类列表，按ID倒序
func (s *CategoryService) List(ctx context.Context, userID uint, req *dto.AdminListRequest) (*dto.CategoryAdminListResponse, error) {
	page, size := normalizeAdminPage(req.Page, req.PageSize, s.pageSize)

	q := s.admin.Queryset(ctx, userID)
	if req.Status != nil {
		q = q.Where("categories.status = ?", *req.Status)
	}

	var categories []model.Category
	total, err := fetchPage(q, page, size, &categories, "categories.id DESC", "Owner")
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	counts, err := s.postCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	list := make([]dto.CategoryAdminItem, 0, len(categories))
	for i := range categories {
		list = append(list, categoryItem(&categories[i], counts[categories[i].ID]))
	}

	return &dto.CategoryAdminListResponse{
		Page: dto.Page{Number: page, Size: size, Total: total},
		List: list,
	}, nil
}

// postCounts 一次分组查询统计各分类下的文章数，不区分文章状态
func (s *CategoryService) postCounts(ctx context.Context, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		CategoryID uint
		Total      int64
	}
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IN ?", ids).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.CategoryID] = r.Total
	}
	return counts, nil
}

// Get 分类详情及其内联文章
func (s *CategoryService) Get(ctx context.Context, userID, id uint) (*dto.CategoryAdminDetail, error) {
	category, err := s.admin.Get(ctx, userID, id, "Owner")
	if err != nil {
		return nil, notFoundAs(err, ErrCategoryNotFound)
	}

	var posts []model.Post
	if err := s.db.WithContext(ctx).
		Where("category_id = ?", id).
		Order("id").
		Find(&posts).Error; err != nil {
		return nil, err
	}

	inlines := make([]dto.InlinePost, 0, len(posts))
	for _, p := range posts {
		inlines = append(inlines, dto.InlinePost{ID: p.ID, Title: p.Title, Desc: p.Desc})
	}

	return &dto.CategoryAdminDetail{
		CategoryAdminItem: categoryItem(category, int64(len(posts))),
		Posts:             inlines,
	}, nil
}

// Create 创建分类，内联文章在同一事务中创建
func (s *CategoryService) Create(ctx context.Context, userID uint, req *dto.CategoryForm) (*dto.CategoryAdminDetail, error) {
	status, err := formStatus(req.Status, model.StatusNormal)
	if err != nil {
		return nil, err
	}
	category := &model.Category{
		Name:   req.Name,
		Status: status,
		IsNav:  req.IsNav,
	}

	err = s.admin.Save(ctx, userID, category, SaveOptions{
		After: func(tx *gorm.DB) error {
			return saveInlinePosts(tx, userID, category.ID, req.Posts)
		},
	})
	if err != nil {
		return nil, err
	}

	s.navs.Invalidate(ctx, cache.NavKey)
	s.logger.Infof("创建分类: id=%d name=%s owner=%d", category.ID, category.Name, userID)
	return s.Get(ctx, userID, category.ID)
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, userID, id uint, req *dto.CategoryForm) (*dto.CategoryAdminDetail, error) {
	category, err := s.admin.Get(ctx, userID, id)
	if err != nil {
		return nil, notFoundAs(err, ErrCategoryNotFound)
	}

	status, err := formStatus(req.Status, category.Status)
	if err != nil {
		return nil, err
	}

	var changed []string
	if category.Name != req.Name {
		changed = append(changed, "name")
	}
	if category.Status != status {
		changed = append(changed, "status")
	}
	if category.IsNav != req.IsNav {
		changed = append(changed, "is_nav")
	}
	if len(req.Posts) > 0 {
		changed = append(changed, "posts")
	}

	category.Name = req.Name
	category.Status = status
	category.IsNav = req.IsNav

	err = s.admin.Save(ctx, userID, category, SaveOptions{
		Change:  true,
		Columns: []string{"name", "status", "is_nav"},
		Changed: changed,
		After: func(tx *gorm.DB) error {
			return saveInlinePosts(tx, userID, category.ID, req.Posts)
		},
	})
	if err != nil {
		return nil, err
	}

	s.navs.Invalidate(ctx, cache.NavKey)
	return s.Get(ctx, userID, id)
}

// Delete 软删除分类
func (s *CategoryService) Delete(ctx context.Context, userID, id uint) error {
	category, err := s.admin.Get(ctx, userID, id)
	if err != nil {
		return notFoundAs(err, ErrCategoryNotFound)
	}

	if err := s.admin.SoftDelete(ctx, userID, category, model.StatusDeleted); err != nil {
		return err
	}

	s.navs.Invalidate(ctx, cache.NavKey)
	s.logger.Infof("删除分类: id=%d owner=%d", id, userID)
	return nil
}

// Meta 分类管理页配置
func (s *CategoryService) Meta() dto.ScreenMeta {
	return dto.ScreenMeta{
		ListDisplay:      []string{"name", "status", "is_nav", "created_time", "post_count", "owner"},
		ListDisplayLinks: []string{"name"},
		ListFilter:       []string{"status"},
		ActionsOnTop:     false,
		Fields:           []string{"name", "status", "is_nav"},
		Inlines: []dto.InlineMeta{
			{Model: "post", Style: "tabular", Fields: []string{"title", "desc"}, Extra: 1},
		},
	}
}

// saveInlinePosts 保存分类编辑页内联的文章：无ID的新建，有ID的只能修改本分类下自己的文章
func saveInlinePosts(tx *gorm.DB, userID, categoryID uint, posts []dto.InlinePost) error {
	for _, p := range posts {
		if p.ID == 0 {
			post := &model.Post{
				Title:      p.Title,
				Desc:       p.Desc,
				Status:     model.PostStatusNormal,
				CategoryID: categoryID,
			}
			post.SetOwner(userID)
			if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
				return err
			}
			continue
		}

		q := tx.Model(&model.Post{}).Where("id = ? AND category_id = ? AND owner_id = ?", p.ID, categoryID, userID)
		var n int64
		if err := q.Session(&gorm.Session{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("文章%d: %w", p.ID, ErrInvalidInlinePost)
		}
		if err := q.Updates(map[string]interface{}{"title": p.Title, "desc": p.Desc}).Error; err != nil {
			return err
		}
	}
	return nil
}

func categoryItem(c *model.Category, postCount int64) dto.CategoryAdminItem {
	item := dto.CategoryAdminItem{
		ID:          c.ID,
		Name:        c.Name,
		Status:      int(c.Status),
		StatusLabel: c.Status.Label(),
		IsNav:       c.IsNav,
		CreatedTime: c.CreatedTime.Format(dto.TimeLayout),
		PostCount:   postCount,
	}
	if c.Owner != nil {
		item.Owner = c.Owner.Username
	}
	return item
}

// formStatus 表单中的状态，未填写时取def
func formStatus(status *int, def model.Status) (model.Status, error) {
	if status == nil {
		return def, nil
	}
	s := model.Status(*status)
	if !s.Valid() {
		return def, ErrInvalidStatus
	}
	return s, nil
}
