package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostService 后台文章管理
type PostService struct {
	db       *gorm.DB
	admin    *OwnerAdmin[model.Post, *model.Post]
	pageSize int
	logger   *zap.SugaredLogger
}

// NewPostService 创建文章服务实例
func NewPostService(db *gorm.DB, pageSize int, log *zap.SugaredLogger) *PostService {
	return &PostService{
		db:       db,
		admin:    NewOwnerAdmin[model.Post](db),
		pageSize: pageSize,
		logger:   log,
	}
}

// List 当前用户的文章列表，支持按自己的分类过滤和按标题、分类名搜索
func (s *PostService) List(ctx context.Context, userID uint, req *dto.PostAdminListRequest) (*dto.PostAdminListResponse, error) {
	page, size := normalizeAdminPage(req.Page, req.PageSize, s.pageSize)

	q := s.admin.Queryset(ctx, userID)
	if req.Status != nil {
		q = q.Where("posts.status = ?", *req.Status)
	}
	if req.OwnerCategory != 0 {
		q = q.Where("posts.category_id = ?", req.OwnerCategory)
	}
	if req.Q != "" {
		like := "%" + req.Q + "%"
		q = q.Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.title LIKE ? OR categories.name LIKE ?", like, like)
	}

	var posts []model.Post
	total, err := fetchPage(q, page, size, &posts, "posts.id DESC", "Category", "Owner")
	if err != nil {
		return nil, err
	}

	list := make([]dto.PostAdminItem, 0, len(posts))
	for i := range posts {
		list = append(list, postAdminItem(&posts[i]))
	}

	return &dto.PostAdminListResponse{
		Page: dto.Page{Number: page, Size: size, Total: total},
		List: list,
	}, nil
}

// CategoryLookups 分类过滤器选项，只包含当前用户的分类
func (s *PostService) CategoryLookups(ctx context.Context, userID uint) ([]dto.Lookup, error) {
	lookups := make([]dto.Lookup, 0)
	err := s.db.WithContext(ctx).Model(&model.Category{}).
		Scopes(OwnedBy("categories", userID)).
		Select("id, name").
		Order("id").
		Scan(&lookups).Error
	if err != nil {
		return nil, err
	}
	return lookups, nil
}

// Get 文章编辑详情
func (s *PostService) Get(ctx context.Context, userID, id uint) (*dto.PostAdminDetail, error) {
	post, err := s.admin.Get(ctx, userID, id, "Tags", "Owner")
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}

	detail := &dto.PostAdminDetail{
		ID:          post.ID,
		Title:       post.Title,
		CategoryID:  post.CategoryID,
		Status:      int(post.Status),
		Desc:        post.Desc,
		Content:     post.Content,
		TagIDs:      tagIDs(post.Tags),
		CreatedTime: post.CreatedTime.Format(dto.TimeLayout),
	}
	if post.Owner != nil {
		detail.Owner = post.Owner.Username
	}
	return detail, nil
}

// Create 创建文章
func (s *PostService) Create(ctx context.Context, userID uint, req *dto.PostForm) (*dto.PostAdminDetail, error) {
	status, err := formPostStatus(req.Status, model.PostStatusNormal)
	if err != nil {
		return nil, err
	}
	tags, err := s.checkRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Status:     status,
		Desc:       req.Desc,
		Content:    req.Content,
	}
	err = s.admin.Save(ctx, userID, post, SaveOptions{
		After: func(tx *gorm.DB) error {
			return replaceTags(tx, post, tags)
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("创建文章: id=%d title=%s owner=%d", post.ID, post.Title, userID)
	return s.Get(ctx, userID, post.ID)
}

// Update 更新文章，标签整体替换
func (s *PostService) Update(ctx context.Context, userID, id uint, req *dto.PostForm) (*dto.PostAdminDetail, error) {
	post, err := s.admin.Get(ctx, userID, id, "Tags")
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}
	status, err := formPostStatus(req.Status, post.Status)
	if err != nil {
		return nil, err
	}
	tags, err := s.checkRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	var changed []string
	if post.Title != req.Title {
		changed = append(changed, "title")
	}
	if post.CategoryID != req.CategoryID {
		changed = append(changed, "category")
	}
	if post.Status != status {
		changed = append(changed, "status")
	}
	if post.Desc != req.Desc {
		changed = append(changed, "desc")
	}
	if post.Content != req.Content {
		changed = append(changed, "content")
	}
	if !sameIDs(tagIDs(post.Tags), tagIDs(tags)) {
		changed = append(changed, "tag")
	}

	post.Title = req.Title
	post.CategoryID = req.CategoryID
	post.Status = status
	post.Desc = req.Desc
	post.Content = req.Content
	post.Category = nil

	err = s.admin.Save(ctx, userID, post, SaveOptions{
		Change:  true,
		Columns: []string{"title", "category_id", "status", "desc", "content"},
		Changed: changed,
		After: func(tx *gorm.DB) error {
			return replaceTags(tx, post, tags)
		},
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Delete 软删除文章
func (s *PostService) Delete(ctx context.Context, userID, id uint) error {
	post, err := s.admin.Get(ctx, userID, id)
	if err != nil {
		return notFoundAs(err, ErrPostNotFound)
	}
	if err := s.admin.SoftDelete(ctx, userID, post, model.PostStatusDeleted); err != nil {
		return err
	}

	s.logger.Infof("删除文章: id=%d owner=%d", id, userID)
	return nil
}

// Meta 文章管理页配置
func (s *PostService) Meta() dto.ScreenMeta {
	return dto.ScreenMeta{
		ListDisplay:      []string{"title", "category", "status", "created_time", "owner", "operator"},
		ListDisplayLinks: []string{},
		ListFilter:       []string{"owner_category"},
		SearchFields:     []string{"title", "category__name"},
		ActionsOnTop:     true,
		Fieldsets: []dto.Fieldset{
			{Name: "基础配置", Fields: [][]string{{"title", "category"}, {"status"}}},
			{Name: "内容", Fields: [][]string{{"desc"}, {"content"}}},
			{Name: "额外信息", Classes: []string{"collapse"}, Fields: [][]string{{"tag"}}},
		},
		FilterVertical: []string{"tag"},
	}
}

// checkRefs 校验文章引用的分类和标签都存在
func (s *PostService) checkRefs(ctx context.Context, req *dto.PostForm) ([]model.Tag, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", req.CategoryID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("分类%d: %w", req.CategoryID, ErrInvalidCategory)
	}

	ids := uniqueIDs(req.TagIDs)
	tags := make([]model.Tag, 0, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrInvalidTag
	}
	return tags, nil
}

// replaceTags 用tags整体替换文章的标签
func replaceTags(tx *gorm.DB, post *model.Post, tags []model.Tag) error {
	association := tx.Model(post).Association("Tags")
	if len(tags) == 0 {
		return association.Clear()
	}
	return association.Replace(tags)
}

func postAdminItem(p *model.Post) dto.PostAdminItem {
	item := dto.PostAdminItem{
		ID:          p.ID,
		Title:       p.Title,
		CategoryID:  p.CategoryID,
		Status:      int(p.Status),
		StatusLabel: p.Status.Label(),
		CreatedTime: p.CreatedTime.Format(dto.TimeLayout),
		Operator:    fmt.Sprintf("/api/admin/posts/%d", p.ID),
	}
	if p.Category != nil {
		item.Category = p.Category.Name
	}
	if p.Owner != nil {
		item.Owner = p.Owner.Username
	}
	return item
}

// formPostStatus 表单中的文章状态，未填写时取def
func formPostStatus(status *int, def model.PostStatus) (model.PostStatus, error) {
	if status == nil {
		return def, nil
	}
	s := model.PostStatus(*status)
	if !s.Valid() {
		return def, ErrInvalidStatus
	}
	return s, nil
}

func tagIDs(tags []model.Tag) []uint {
	ids := make([]uint, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sameIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
