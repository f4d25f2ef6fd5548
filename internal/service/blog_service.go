package service

import (
	"context"
	"errors"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/pkg/cache"
	"github.com/Owenun/Windy/pkg/markdown"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 前台列表预加载的关联
var postPreloads = []string{"Category", "Owner", "Tags"}

// BlogService 前台只读查询
type BlogService struct {
	db       *gorm.DB
	navs     *cache.Loader
	sidebars SideBarProvider
	cfg      config.BlogConfig
	logger   *zap.SugaredLogger
}

// NewBlogService 创建前台服务实例，navs为nil时导航不走缓存
func NewBlogService(db *gorm.DB, navs *cache.Loader, sidebars SideBarProvider, cfg config.BlogConfig, log *zap.SugaredLogger) *BlogService {
	return &BlogService{
		db:       db,
		navs:     navs,
		sidebars: sidebars,
		cfg:      cfg,
		logger:   log,
	}
}

// GetNavs 查询一次正常状态的分类，按是否导航分成两组，保持ID顺序
func (s *BlogService) GetNavs(ctx context.Context) (*dto.Navs, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusNormal).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	navs := &dto.Navs{
		Navs:       make([]model.Category, 0),
		Categories: make([]model.Category, 0),
	}
	for _, c := range categories {
		if c.IsNav {
			navs.Navs = append(navs.Navs, c)
		} else {
			navs.Categories = append(navs.Categories, c)
		}
	}
	return navs, nil
}

// CachedNavs 经缓存读取导航
func (s *BlogService) CachedNavs(ctx context.Context) (*dto.Navs, error) {
	return cache.Load(ctx, s.navs, cache.NavKey, s.GetNavs)
}

// latest 正常状态的文章
func (s *BlogService) latest(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("posts.status = ?", model.PostStatusNormal)
}

// GetByTag 标签下正常状态的文章，标签不存在时返回空列表和nil
func (s *BlogService) GetByTag(ctx context.Context, tagID uint) ([]model.Post, *model.Tag, error) {
	tag, err := s.GetTag(ctx, tagID)
	if errors.Is(err, ErrTagNotFound) {
		return []model.Post{}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	posts := make([]model.Post, 0)
	if err := s.byTag(ctx, tagID).
		Preload("Category").
		Preload("Owner").
		Order("posts.id").
		Find(&posts).Error; err != nil {
		return nil, nil, err
	}
	return posts, tag, nil
}

// GetByCategory 分类下正常状态的文章，分类不存在时返回空列表和nil
func (s *BlogService) GetByCategory(ctx context.Context, categoryID uint) ([]model.Post, *model.Category, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if errors.Is(err, ErrCategoryNotFound) {
		return []model.Post{}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	posts := make([]model.Post, 0)
	if err := s.latest(ctx).
		Where("posts.category_id = ?", categoryID).
		Preload("Category").
		Preload("Owner").
		Order("posts.id").
		Find(&posts).Error; err != nil {
		return nil, nil, err
	}
	return posts, category, nil
}

// LatestPosts 正常状态的文章，按ID升序
func (s *BlogService) LatestPosts(ctx context.Context) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	if err := s.latest(ctx).Order("posts.id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// HotPosts 正常状态的文章，按访问量倒序，访问量相同按ID升序
func (s *BlogService) HotPosts(ctx context.Context) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	if err := s.latest(ctx).Order("posts.pv DESC, posts.id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetCategory 按ID获取分类，不区分状态
func (s *BlogService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetTag 按ID获取标签，不区分状态
func (s *BlogService) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// Index 首页
func (s *BlogService) Index(ctx context.Context, page string) (*dto.PostListContext, dto.Page, error) {
	return s.listWithContext(ctx, s.latest(ctx), page)
}

// PostList 文章列表页，不带侧边栏与导航
func (s *BlogService) PostList(ctx context.Context, page string) (*dto.PostListContext, dto.Page, error) {
	var posts []model.Post
	p, err := paginatePublic(s.latest(ctx), page, s.cfg.PostListPageSize, &posts, "posts.id", postPreloads...)
	if err != nil {
		return nil, dto.Page{}, err
	}
	return &dto.PostListContext{PostList: briefs(posts)}, p, nil
}

// HotPage 最热文章分页
func (s *BlogService) HotPage(ctx context.Context, page string) (*dto.PostListContext, dto.Page, error) {
	var posts []model.Post
	p, err := paginatePublic(s.latest(ctx), page, s.cfg.HotPageSize, &posts, "posts.pv DESC, posts.id ASC", postPreloads...)
	if err != nil {
		return nil, dto.Page{}, err
	}
	return &dto.PostListContext{PostList: briefs(posts)}, p, nil
}

// CategoryPosts 分类页，分类不存在时返回ErrCategoryNotFound
func (s *BlogService) CategoryPosts(ctx context.Context, categoryID uint, page string) (*dto.PostListContext, dto.Page, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, dto.Page{}, err
	}

	out, p, err := s.listWithContext(ctx, s.latest(ctx).Where("posts.category_id = ?", categoryID), page)
	if err != nil {
		return nil, dto.Page{}, err
	}
	out.Category = category
	return out, p, nil
}

// TagPosts 标签页，标签不存在时返回ErrTagNotFound
func (s *BlogService) TagPosts(ctx context.Context, tagID uint, page string) (*dto.PostListContext, dto.Page, error) {
	tag, err := s.GetTag(ctx, tagID)
	if err != nil {
		return nil, dto.Page{}, err
	}

	out, p, err := s.listWithContext(ctx, s.byTag(ctx, tagID), page)
	if err != nil {
		return nil, dto.Page{}, err
	}
	out.Tag = tag
	return out, p, nil
}

// PostDetail 文章详情，只能查看正常状态的文章
func (s *BlogService) PostDetail(ctx context.Context, id uint) (*dto.PostDetailContext, error) {
	var post model.Post
	q := s.latest(ctx).Where("posts.id = ?", id)
	for _, p := range postPreloads {
		q = q.Preload(p)
	}
	if err := q.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	html, err := markdown.ToHTML(post.Content)
	if err != nil {
		return nil, err
	}

	common, err := s.CommonContext(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PostDetailContext{
		CommonContext: common,
		Post: dto.PostDetail{
			PostBrief:   brief(&post),
			Content:     post.Content,
			ContentHTML: html,
		},
	}, nil
}

func (s *BlogService) byTag(ctx context.Context, tagID uint) *gorm.DB {
	return s.latest(ctx).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID)
}

func (s *BlogService) listWithContext(ctx context.Context, q *gorm.DB, page string) (*dto.PostListContext, dto.Page, error) {
	var posts []model.Post
	p, err := paginatePublic(q, page, s.cfg.IndexPageSize, &posts, "posts.id", postPreloads...)
	if err != nil {
		return nil, dto.Page{}, err
	}

	common, err := s.CommonContext(ctx)
	if err != nil {
		return nil, dto.Page{}, err
	}
	return &dto.PostListContext{CommonContext: common, PostList: briefs(posts)}, p, nil
}

func briefs(posts []model.Post) []dto.PostBrief {
	out := make([]dto.PostBrief, 0, len(posts))
	for i := range posts {
		out = append(out, brief(&posts[i]))
	}
	return out
}

// 摘要为空时从正文截取的字数
const excerptLength = 120

func brief(p *model.Post) dto.PostBrief {
	b := dto.PostBrief{
		ID:          p.ID,
		Title:       p.Title,
		Desc:        p.Desc,
		Tags:        make([]dto.TagBrief, 0, len(p.Tags)),
		CreatedTime: p.CreatedTime.Format(dto.TimeLayout),
		PV:          p.PV,
		PU:          p.PU,
	}
	if b.Desc == "" {
		b.Desc = excerpt(p.Content)
	}
	if p.Category != nil {
		b.Category = &dto.CategoryBrief{ID: p.Category.ID, Name: p.Category.Name, IsNav: p.Category.IsNav}
	}
	if p.Owner != nil {
		b.Owner = p.Owner.Username
	}
	for _, t := range p.Tags {
		b.Tags = append(b.Tags, dto.TagBrief{ID: t.ID, Name: t.Name})
	}
	return b
}

// excerpt 从Markdown正文提取纯文本摘要，渲染失败时返回空
func excerpt(content string) string {
	html, err := markdown.ToHTML(content)
	if err != nil {
		return ""
	}
	text, err := markdown.Excerpt(html, excerptLength)
	if err != nil {
		return ""
	}
	return text
}
