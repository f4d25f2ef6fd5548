package dto

// TagForm 创建、更新标签请求
type TagForm struct {
	Name   string `json:"name" binding:"required,max=10"`
	Status *int   `json:"status" binding:"omitempty,oneof=0 1"`
}

// TagAdminItem 后台标签列表项
type TagAdminItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Status      int    `json:"status"`
	StatusLabel string `json:"status_label"`
	CreatedTime string `json:"created_time"`
	Owner       string `json:"owner"`
}

// TagAdminListResponse 后台标签列表响应
type TagAdminListResponse struct {
	Page Page           `json:"-"`
	List []TagAdminItem `json:"list"`
}

// TagBrief 标签简要信息
type TagBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
