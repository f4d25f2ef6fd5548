package dto

// InlinePost 分类编辑页内联的文章
type InlinePost struct {
	ID    uint   `json:"id"`
	Title string `json:"title" binding:"required,max=255"`
	Desc  string `json:"desc" binding:"max=1024"`
}

// CategoryForm 创建、更新分类请求，owner由服务端写入
type CategoryForm struct {
	Name   string       `json:"name" binding:"required,max=128"`
	Status *int         `json:"status" binding:"omitempty,oneof=0 1"`
	IsNav  bool         `json:"is_nav"`
	Posts  []InlinePost `json:"posts" binding:"omitempty,dive"`
}

// CategoryAdminItem 后台分类列表项
type CategoryAdminItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Status      int    `json:"status"`
	StatusLabel string `json:"status_label"`
	IsNav       bool   `json:"is_nav"`
	CreatedTime string `json:"created_time"`
	PostCount   int64  `json:"post_count"`
	Owner       string `json:"owner"`
}

// CategoryAdminDetail 后台分类详情
type CategoryAdminDetail struct {
	CategoryAdminItem
	Posts []InlinePost `json:"posts"`
}

// CategoryAdminListResponse 后台分类列表响应
type CategoryAdminListResponse struct {
	Page Page                `json:"-"`
	List []CategoryAdminItem `json:"list"`
}

// CategoryBrief 分类简要信息
type CategoryBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	IsNav bool   `json:"is_nav"`
}
