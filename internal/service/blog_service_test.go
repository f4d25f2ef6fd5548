package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/internal/testutil"
	"github.com/Owenun/Windy/pkg/cache"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBlogService(db *gorm.DB, navs *cache.Loader) *BlogService {
	return NewBlogService(db, navs, NewSideBarService(db), config.Default().Blog, nopLog())
}

func newRedisLoader(t *testing.T) (*cache.Loader, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewLoader(cache.NewRedisCache(client), time.Minute), mr
}

func categoryNames(categories []model.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func postTitles(posts []model.Post) []string {
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestGetNavs_PartitionsNormalCategories(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	testutil.CreateCategory(t, db, owner, "nav1", model.StatusNormal, true)
	testutil.CreateCategory(t, db, owner, "plain1", model.StatusNormal, false)
	testutil.CreateCategory(t, db, owner, "deleted-nav", model.StatusDeleted, true)
	testutil.CreateCategory(t, db, owner, "nav2", model.StatusNormal, true)
	testutil.CreateCategory(t, db, owner, "deleted-plain", model.StatusDeleted, false)
	testutil.CreateCategory(t, db, owner, "plain2", model.StatusNormal, false)

	navs, err := newBlogService(db, nil).GetNavs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"nav1", "nav2"}, categoryNames(navs.Navs))
	assert.Equal(t, []string{"plain1", "plain2"}, categoryNames(navs.Categories))
	assert.Len(t, append(navs.Navs, navs.Categories...), 4)
}

func TestGetNavs_TwoKeys(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	cat1 := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	cat2 := testutil.CreateCategory(t, db, owner, "Life", model.StatusNormal, false)

	navs, err := newBlogService(db, nil).GetNavs(context.Background())
	require.NoError(t, err)
	require.Len(t, navs.Navs, 1)
	require.Len(t, navs.Categories, 1)
	assert.Equal(t, cat1.ID, navs.Navs[0].ID)
	assert.Equal(t, cat2.ID, navs.Categories[0].ID)

	data, err := json.Marshal(navs)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "navs")
	assert.Contains(t, keys, "categories")
}

func TestGetNavs_Empty(t *testing.T) {
	db := testutil.NewDB(t)

	navs, err := newBlogService(db, nil).GetNavs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, navs.Navs)
	assert.NotNil(t, navs.Categories)
	assert.Empty(t, navs.Navs)
	assert.Empty(t, navs.Categories)
}

func TestGetByTag(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	tag := testutil.CreateTag(t, db, owner, "gorm", model.StatusNormal)
	other := testutil.CreateTag(t, db, owner, "gin", model.StatusNormal)

	testutil.CreatePost(t, db, owner, category, "normal", model.PostStatusNormal, 1, tag)
	testutil.CreatePost(t, db, owner, category, "draft", model.PostStatusDraft, 1, tag)
	testutil.CreatePost(t, db, owner, category, "deleted", model.PostStatusDeleted, 1, tag)
	testutil.CreatePost(t, db, owner, category, "other", model.PostStatusNormal, 1, other)

	svc := newBlogService(db, nil)
	posts, gotTag, err := svc.GetByTag(context.Background(), tag.ID)
	require.NoError(t, err)
	require.NotNil(t, gotTag)
	assert.Equal(t, "gorm", gotTag.Name)
	assert.Equal(t, []string{"normal"}, postTitles(posts))
	require.NotNil(t, posts[0].Category)
	require.NotNil(t, posts[0].Owner)
	assert.Equal(t, "Go", posts[0].Category.Name)
	assert.Equal(t, "alice", posts[0].Owner.Username)
}

func TestGetByTag_Missing(t *testing.T) {
	db := testutil.NewDB(t)

	posts, tag, err := newBlogService(db, nil).GetByTag(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, tag)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestGetByCategory(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	goCat := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	lifeCat := testutil.CreateCategory(t, db, owner, "Life", model.StatusNormal, false)
	testutil.CreatePost(t, db, owner, goCat, "go1", model.PostStatusNormal, 1)
	testutil.CreatePost(t, db, owner, goCat, "go-draft", model.PostStatusDraft, 1)
	testutil.CreatePost(t, db, owner, lifeCat, "life1", model.PostStatusNormal, 1)

	svc := newBlogService(db, nil)
	posts, category, err := svc.GetByCategory(context.Background(), goCat.ID)
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, goCat.ID, category.ID)
	assert.Equal(t, []string{"go1"}, postTitles(posts))

	posts, category, err = svc.GetByCategory(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, category)
	assert.Empty(t, posts)
}

func TestHotPosts_OrderedByPV(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	testutil.CreatePost(t, db, owner, category, "p10-a", model.PostStatusNormal, 10)
	testutil.CreatePost(t, db, owner, category, "p50", model.PostStatusNormal, 50)
	testutil.CreatePost(t, db, owner, category, "p10-b", model.PostStatusNormal, 10)
	testutil.CreatePost(t, db, owner, category, "p99-draft", model.PostStatusDraft, 99)
	testutil.CreatePost(t, db, owner, category, "p20", model.PostStatusNormal, 20)

	posts, err := newBlogService(db, nil).HotPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p50", "p20", "p10-a", "p10-b"}, postTitles(posts))
	for i := 1; i < len(posts); i++ {
		assert.GreaterOrEqual(t, posts[i-1].PV, posts[i].PV)
	}
}

func TestLatestPosts_ExcludesDraftAndDeleted(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	testutil.CreatePost(t, db, owner, category, "first", model.PostStatusNormal, 1)
	testutil.CreatePost(t, db, owner, category, "draft", model.PostStatusDraft, 1)
	testutil.CreatePost(t, db, owner, category, "deleted", model.PostStatusDeleted, 1)
	testutil.CreatePost(t, db, owner, category, "second", model.PostStatusNormal, 1)

	posts, err := newBlogService(db, nil).LatestPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, postTitles(posts))
	for _, p := range posts {
		assert.Equal(t, model.PostStatusNormal, p.Status)
	}
}

func TestIndex_Pagination(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	for i := 0; i < 7; i++ {
		testutil.CreatePost(t, db, owner, category, "post", model.PostStatusNormal, 1)
	}
	svc := newBlogService(db, nil)
	ctx := context.Background()

	out, page, err := svc.Index(ctx, "")
	require.NoError(t, err)
	assert.Len(t, out.PostList, 5)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, int64(7), page.Total)
	require.NotNil(t, out.CommonContext)
	assert.Len(t, out.Navs.Navs, 1)

	out, page, err = svc.Index(ctx, "last")
	require.NoError(t, err)
	assert.Len(t, out.PostList, 2)
	assert.Equal(t, 2, page.Number)

	_, _, err = svc.Index(ctx, "3")
	assert.ErrorIs(t, err, ErrPageNotFound)
	_, _, err = svc.Index(ctx, "x")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestIndex_EmptyFirstPage(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newBlogService(db, nil)

	out, page, err := svc.Index(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, out.PostList)
	assert.Equal(t, 1, page.Number)

	_, _, err = svc.Index(context.Background(), "2")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPostList_OnePerPageWithoutContext(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	testutil.CreatePost(t, db, owner, category, "first", model.PostStatusNormal, 1)
	testutil.CreatePost(t, db, owner, category, "second", model.PostStatusNormal, 1)

	out, page, err := newBlogService(db, nil).PostList(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, out.PostList, 1)
	assert.Equal(t, "second", out.PostList[0].Title)
	assert.Equal(t, 1, page.Size)
	assert.Nil(t, out.CommonContext)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"navs"`)
	assert.NotContains(t, string(data), `"sidebars"`)
}

func TestCategoryPosts(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	goCat := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	hidden := testutil.CreateCategory(t, db, owner, "Old", model.StatusDeleted, false)
	testutil.CreatePost(t, db, owner, goCat, "go1", model.PostStatusNormal, 1)
	testutil.CreatePost(t, db, owner, hidden, "old1", model.PostStatusNormal, 1)
	svc := newBlogService(db, nil)
	ctx := context.Background()

	out, _, err := svc.CategoryPosts(ctx, goCat.ID, "")
	require.NoError(t, err)
	require.NotNil(t, out.Category)
	assert.Equal(t, "Go", out.Category.Name)
	require.Len(t, out.PostList, 1)
	assert.Equal(t, "go1", out.PostList[0].Title)

	// 已删除的分类行仍存在，不返回404
	out, _, err = svc.CategoryPosts(ctx, hidden.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Old", out.Category.Name)

	_, _, err = svc.CategoryPosts(ctx, 999, "")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestTagPosts(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	tag := testutil.CreateTag(t, db, owner, "gorm", model.StatusNormal)
	testutil.CreatePost(t, db, owner, category, "tagged", model.PostStatusNormal, 1, tag)
	testutil.CreatePost(t, db, owner, category, "untagged", model.PostStatusNormal, 1)
	svc := newBlogService(db, nil)

	out, page, err := svc.TagPosts(context.Background(), tag.ID, "")
	require.NoError(t, err)
	require.NotNil(t, out.Tag)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, out.PostList, 1)
	assert.Equal(t, "tagged", out.PostList[0].Title)
	require.Len(t, out.PostList[0].Tags, 1)
	assert.Equal(t, "gorm", out.PostList[0].Tags[0].Name)

	_, _, err = svc.TagPosts(context.Background(), 999, "")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestPostDetail(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	post := testutil.CreatePost(t, db, owner, category, "Hello", model.PostStatusNormal, 1)
	draft := testutil.CreatePost(t, db, owner, category, "Draft", model.PostStatusDraft, 1)
	require.NoError(t, db.Create(&model.SideBar{Title: "关于", DisplayType: model.DisplayHTML, Content: "hi", Status: model.SideBarShow, OwnerID: owner.ID}).Error)
	require.NoError(t, db.Create(&model.SideBar{Title: "隐藏", DisplayType: model.DisplayHot, Status: model.SideBarHide, OwnerID: owner.ID}).Error)
	svc := newBlogService(db, nil)

	out, err := svc.PostDetail(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", out.Post.Title)
	assert.Equal(t, "# Hello", out.Post.Content)
	assert.Contains(t, out.Post.ContentHTML, "<h1>Hello</h1>")
	require.Len(t, out.SideBars, 1)
	assert.Equal(t, "关于", out.SideBars[0].Title)

	_, err = svc.PostDetail(context.Background(), draft.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.PostDetail(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestHotPage(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	testutil.CreatePost(t, db, owner, category, "cold", model.PostStatusNormal, 2)
	testutil.CreatePost(t, db, owner, category, "hot", model.PostStatusNormal, 30)

	out, page, err := newBlogService(db, nil).HotPage(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 5, page.Size)
	require.Len(t, out.PostList, 2)
	assert.Equal(t, "hot", out.PostList[0].Title)
}

func TestCachedNavs_HitAndInvalidate(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	navs, mr := newRedisLoader(t)
	svc := newBlogService(db, navs)
	categories := NewCategoryService(db, navs, 20, nopLog())
	ctx := context.Background()

	got, err := svc.CachedNavs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, categoryNames(got.Navs))
	assert.True(t, mr.Exists(cache.NavKey))

	// 绕过后台直接写库，缓存不变
	testutil.CreateCategory(t, db, owner, "Rust", model.StatusNormal, true)
	got, err = svc.CachedNavs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, categoryNames(got.Navs))

	// 后台写入会删除缓存
	_, err = categories.Create(ctx, owner.ID, &dto.CategoryForm{Name: "Life"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.NavKey))

	got, err = svc.CachedNavs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, categoryNames(got.Navs))
	assert.Equal(t, []string{"Life"}, categoryNames(got.Categories))
}

func TestCachedNavs_RedisDown(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, false)
	navs, mr := newRedisLoader(t)
	mr.Close()

	got, err := newBlogService(db, navs).CachedNavs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, categoryNames(got.Categories))
}

func TestBrief_DescFromContent(t *testing.T) {
	b := brief(&model.Post{Title: "t", Content: "# Hello\n\nsome **bold** text"})
	assert.Equal(t, "Hello some bold text", b.Desc)

	b = brief(&model.Post{Title: "t", Desc: "written", Content: "# Hello"})
	assert.Equal(t, "written", b.Desc)

	b = brief(&model.Post{Title: "t", Content: strings.Repeat("字", excerptLength+10)})
	assert.Equal(t, strings.Repeat("字", excerptLength)+"...", b.Desc)

	b = brief(&model.Post{Title: "t"})
	assert.Empty(t, b.Desc)
}
