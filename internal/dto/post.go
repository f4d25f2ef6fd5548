package dto

// PostForm 创建、更新文章请求
type PostForm struct {
	Title      string `json:"title" binding:"required,max=255"`
	CategoryID uint   `json:"category_id" binding:"required"`
	Status     *int   `json:"status" binding:"omitempty,oneof=0 1 2"`
	Desc       string `json:"desc" binding:"max=1024"`
	Content    string `json:"content"`
	TagIDs     []uint `json:"tag_ids" binding:"omitempty,dive,min=1"`
}

// PostAdminListRequest 后台文章列表请求
type PostAdminListRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status        *int   `form:"status" binding:"omitempty,oneof=0 1 2"`
	OwnerCategory uint   `form:"owner_category"`
	Q             string `form:"q" binding:"omitempty,max=100"`
}

// PostAdminItem 后台文章列表项
type PostAdminItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	CategoryID  uint   `json:"category_id"`
	Category    string `json:"category"`
	Status      int    `json:"status"`
	StatusLabel string `json:"status_label"`
	CreatedTime string `json:"created_time"`
	Owner       string `json:"owner"`
	Operator    string `json:"operator"` // 编辑链接
}

// PostAdminListResponse 后台文章列表响应
type PostAdminListResponse struct {
	Page Page            `json:"-"`
	List []PostAdminItem `json:"list"`
}

// PostAdminDetail 后台文章编辑详情
type PostAdminDetail struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	CategoryID  uint   `json:"category_id"`
	Status      int    `json:"status"`
	Desc        string `json:"desc"`
	Content     string `json:"content"`
	TagIDs      []uint `json:"tag_ids"`
	CreatedTime string `json:"created_time"`
	Owner       string `json:"owner"`
}

// PostBrief 前台文章列表项
type PostBrief struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Desc        string         `json:"desc"`
	Category    *CategoryBrief `json:"category"`
	Owner       string         `json:"owner"`
	Tags        []TagBrief     `json:"tags"`
	CreatedTime string         `json:"created_time"`
	PV          int            `json:"pv"`
	PU          int            `json:"pu"`
}

// PostDetail 前台文章详情
type PostDetail struct {
	PostBrief
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
}
