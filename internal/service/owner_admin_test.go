package service

import (
	"context"
	"testing"

	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOwnerAdmin_QuerysetShowsOnlyOwnRecords(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	bob := testutil.CreateUser(t, db, "bob", model.RoleAdmin)
	testutil.CreateCategory(t, db, alice, "Go", model.StatusNormal, true)
	testutil.CreateCategory(t, db, alice, "Rust", model.StatusNormal, false)
	testutil.CreateCategory(t, db, bob, "Python", model.StatusNormal, false)

	admin := NewOwnerAdmin[model.Category](db)
	var categories []model.Category
	require.NoError(t, admin.Queryset(context.Background(), alice.ID).Order("id").Find(&categories).Error)

	require.Len(t, categories, 2)
	for _, c := range categories {
		assert.Equal(t, alice.ID, c.OwnerID)
	}
}

func TestOwnerAdmin_GetForeignRecord(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	bob := testutil.CreateUser(t, db, "bob", model.RoleAdmin)
	foreign := testutil.CreateCategory(t, db, bob, "Python", model.StatusNormal, false)

	admin := NewOwnerAdmin[model.Category](db)
	_, err := admin.Get(context.Background(), alice.ID, foreign.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = admin.Get(context.Background(), alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := admin.Get(context.Background(), bob.ID, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, "Python", got.Name)
}

func TestOwnerAdmin_SaveStampsActingUser(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	bob := testutil.CreateUser(t, db, "bob", model.RoleAdmin)
	admin := NewOwnerAdmin[model.Tag](db)

	// 提交了别人的owner也会被覆盖
	tag := &model.Tag{Name: "gorm", Status: model.StatusNormal, OwnerID: bob.ID}
	require.NoError(t, admin.Save(context.Background(), alice.ID, tag, SaveOptions{}))

	var stored model.Tag
	require.NoError(t, db.First(&stored, tag.ID).Error)
	assert.Equal(t, alice.ID, stored.OwnerID)

	stored.OwnerID = bob.ID
	stored.Name = "gin"
	require.NoError(t, admin.Save(context.Background(), alice.ID, &stored, SaveOptions{
		Change:  true,
		Columns: []string{"name"},
		Changed: []string{"name"},
	}))

	var updated model.Tag
	require.NoError(t, db.First(&updated, tag.ID).Error)
	assert.Equal(t, alice.ID, updated.OwnerID)
	assert.Equal(t, "gin", updated.Name)
}

func TestOwnerAdmin_SaveWritesLogEntries(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	admin := NewOwnerAdmin[model.Category](db)
	ctx := context.Background()

	category := &model.Category{Name: "Go", Status: model.StatusNormal}
	require.NoError(t, admin.Save(ctx, alice.ID, category, SaveOptions{}))

	category.IsNav = true
	require.NoError(t, admin.Save(ctx, alice.ID, category, SaveOptions{
		Change:  true,
		Columns: []string{"is_nav"},
		Changed: []string{"is_nav"},
	}))
	require.NoError(t, admin.SoftDelete(ctx, alice.ID, category, model.StatusDeleted))

	entries := logEntries(t, db)
	require.Len(t, entries, 3)

	assert.Equal(t, model.ActionAddition, entries[0].ActionFlag)
	assert.Equal(t, model.ActionChange, entries[1].ActionFlag)
	assert.Equal(t, model.ActionDeletion, entries[2].ActionFlag)
	for _, e := range entries {
		assert.Equal(t, alice.ID, e.UserID)
		assert.Equal(t, "category", e.ContentType)
		assert.Equal(t, "Go", e.ObjectRepr)
	}

	added := decodeMessage(t, entries[0].ChangeMessage)
	require.Len(t, added, 1)
	assert.Contains(t, added[0], "added")

	changed := decodeMessage(t, entries[1].ChangeMessage)
	require.Len(t, changed, 1)
	assert.Equal(t, []interface{}{"is_nav"}, changed[0]["changed"]["fields"])

	var stored model.Category
	require.NoError(t, db.First(&stored, category.ID).Error)
	assert.Equal(t, model.StatusDeleted, stored.Status)
	assert.True(t, stored.IsNav)
}

func TestOwnerAdmin_SaveRollsBackOnAfterError(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	admin := NewOwnerAdmin[model.Category](db)

	category := &model.Category{Name: "Go", Status: model.StatusNormal}
	err := admin.Save(context.Background(), alice.ID, category, SaveOptions{
		After: func(_ *gorm.DB) error { return ErrInvalidInlinePost },
	})
	require.ErrorIs(t, err, ErrInvalidInlinePost)

	var n int64
	require.NoError(t, db.Model(&model.Category{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Empty(t, logEntries(t, db))
}

func TestChangeMessage(t *testing.T) {
	assert.Equal(t, `[{"added":{}}]`, changeMessage(model.ActionAddition, nil))
	assert.Equal(t, `[{"changed":{"fields":["name","status"]}}]`, changeMessage(model.ActionChange, []string{"name", "status"}))
	assert.Equal(t, `[]`, changeMessage(model.ActionChange, nil))
	assert.Equal(t, `[{"deleted":{}}]`, changeMessage(model.ActionDeletion, nil))
}

func countPosts(t *testing.T, db *gorm.DB, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Post{}).Where(where, args...).Count(&n).Error)
	return n
}

func TestCascadeDelete(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	bob := testutil.CreateUser(t, db, "bob", model.RoleAdmin)
	goCat := testutil.CreateCategory(t, db, alice, "Go", model.StatusNormal, true)
	lifeCat := testutil.CreateCategory(t, db, alice, "Life", model.StatusNormal, false)
	bobCat := testutil.CreateCategory(t, db, bob, "Python", model.StatusNormal, false)
	testutil.CreatePost(t, db, alice, goCat, "go1", model.PostStatusNormal, 1)
	testutil.CreatePost(t, db, alice, goCat, "go2", model.PostStatusDraft, 1)
	testutil.CreatePost(t, db, alice, lifeCat, "life1", model.PostStatusNormal, 1)
	testutil.CreatePost(t, db, bob, bobCat, "py1", model.PostStatusNormal, 1)
	testutil.CreateTag(t, db, bob, "web", model.StatusNormal)

	// 删除分类时其下文章一并删除
	require.NoError(t, db.Delete(&model.Category{}, goCat.ID).Error)
	assert.Equal(t, int64(0), countPosts(t, db, "category_id = ?", goCat.ID))
	assert.Equal(t, int64(1), countPosts(t, db, "category_id = ?", lifeCat.ID))

	// 删除用户时其分类、标签和文章一并删除
	require.NoError(t, db.Delete(&model.User{}, bob.ID).Error)
	assert.Equal(t, int64(0), countPosts(t, db, "owner_id = ?", bob.ID))
	var n int64
	require.NoError(t, db.Model(&model.Category{}).Where("owner_id = ?", bob.ID).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Model(&model.Tag{}).Where("owner_id = ?", bob.ID).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, int64(1), countPosts(t, db, "owner_id = ?", alice.ID))
}
