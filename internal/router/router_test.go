package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type body struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.JWT.SecretKey = "test-secret"
	db := testutil.NewDB(t)
	return New(Options{DB: db, Config: cfg}), db
}

func do(t *testing.T, r http.Handler, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, body) {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var b body
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	}
	return w, b
}

func login(t *testing.T, r http.Handler, username string) string {
	t.Helper()
	w, b := do(t, r, http.MethodPost, "/api/users/login", "", gin.H{"username": username, "password": "password"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(b.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLogin(t *testing.T) {
	r, db := setup(t)
	testutil.CreateUser(t, db, "alice", model.RoleAdmin)

	w, _ := do(t, r, http.MethodPost, "/api/users/login", "", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, b := do(t, r, http.MethodPost, "/api/users/login", "", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(b.Data), "password")

	token := login(t, r, "alice")
	w, b = do(t, r, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(b.Data), `"username":"alice"`)
}

func TestAdminRequiresAdminRole(t *testing.T) {
	r, db := setup(t)
	testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	testutil.CreateUser(t, db, "bob", model.RoleUser)

	w, _ := do(t, r, http.MethodGet, "/api/admin/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/admin/categories", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/admin/categories", login(t, r, "bob"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/admin/categories", login(t, r, "alice"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminCategoryFlow(t *testing.T) {
	r, db := setup(t)
	testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	testutil.CreateUser(t, db, "carol", model.RoleAdmin)
	alice := login(t, r, "alice")
	carol := login(t, r, "carol")

	w, b := do(t, r, http.MethodPost, "/api/admin/categories", alice, gin.H{"name": "Go", "is_nav": true})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID    uint   `json:"id"`
		Owner string `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(b.Data, &created))
	assert.Equal(t, "alice", created.Owner)
	path := fmt.Sprintf("/api/admin/categories/%d", created.ID)

	// 别人的分类不可见
	w, _ = do(t, r, http.MethodGet, path, carol, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, b = do(t, r, http.MethodGet, "/api/admin/categories", carol, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(b.Data))

	w, _ = do(t, r, http.MethodPut, path, alice, gin.H{"name": "Golang", "is_nav": false})
	assert.Equal(t, http.StatusOK, w.Code)

	w, b = do(t, r, http.MethodPost, "/api/admin/categories", alice, gin.H{"status": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(b.Data), "name")

	w, _ = do(t, r, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, b = do(t, r, http.MethodGet, "/api/admin/logs", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var logs []struct {
		ActionFlag int `json:"action_flag"`
	}
	require.NoError(t, json.Unmarshal(b.Data, &logs))
	require.Len(t, logs, 3)
	assert.Equal(t, int(model.ActionDeletion), logs[0].ActionFlag)
}

func TestAdminInvalidID(t *testing.T) {
	r, db := setup(t)
	testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	token := login(t, r, "alice")

	for _, path := range []string{"/api/admin/posts/abc", "/api/admin/posts/0", "/api/admin/tags/-1"} {
		w, _ := do(t, r, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestAdminPostInvalidCategory(t *testing.T) {
	r, db := setup(t)
	testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	token := login(t, r, "alice")

	w, _ := do(t, r, http.MethodPost, "/api/admin/posts", token, gin.H{"title": "x", "category_id": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, b := do(t, r, http.MethodGet, "/api/admin/posts/meta", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(b.Data), `"actions_on_top":true`)
}

func TestPublicPages(t *testing.T) {
	r, db := setup(t)
	owner := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, owner, "Go", model.StatusNormal, true)
	tag := testutil.CreateTag(t, db, owner, "gorm", model.StatusNormal)
	post := testutil.CreatePost(t, db, owner, category, "Hello", model.PostStatusNormal, 3, tag)

	w, b := do(t, r, http.MethodGet, "/api", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(b.Data), `"navs"`)
	assert.Contains(t, string(b.Data), `"sidebars"`)
	assert.Contains(t, string(b.Meta), `"num_pages":1`)

	w, _ = do(t, r, http.MethodGet, "/api?page=2", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api?page=last", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, b = do(t, r, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(b.Data), `"navs"`)

	w, _ = do(t, r, http.MethodGet, "/api/posts/hot", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, b = do(t, r, http.MethodGet, fmt.Sprintf("/api/category/%d", category.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(b.Data), `"Hello"`)

	w, _ = do(t, r, http.MethodGet, "/api/category/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/category/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodGet, fmt.Sprintf("/api/tag/%d", tag.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/tag/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, b = do(t, r, http.MethodGet, fmt.Sprintf("/api/post/%d", post.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(b.Data), `"content_html"`)
	w, _ = do(t, r, http.MethodGet, "/api/post/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
