package dto

import "github.com/Owenun/Windy/internal/model"

// Navs 导航分类与普通分类
type Navs struct {
	Navs       []model.Category `json:"navs"`
	Categories []model.Category `json:"categories"`
}

// CommonContext 前台页面共享的侧边栏与导航
type CommonContext struct {
	SideBars []model.SideBar `json:"sidebars"`
	Navs
}

// PostListContext 文章列表页
type PostListContext struct {
	*CommonContext
	PostList []PostBrief     `json:"post_list"`
	Category *model.Category `json:"category,omitempty"`
	Tag      *model.Tag      `json:"tag,omitempty"`
}

// PostDetailContext 文章详情页
type PostDetailContext struct {
	*CommonContext
	Post PostDetail `json:"post"`
}
