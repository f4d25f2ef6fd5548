package dto

// LogEntryListRequest 操作日志列表请求
type LogEntryListRequest struct {
	Page       int  `form:"page" binding:"omitempty,min=1"`
	PageSize   int  `form:"page_size" binding:"omitempty,min=1,max=100"`
	ActionFlag *int `form:"action_flag" binding:"omitempty,oneof=1 2 3"`
}

// LogEntryItem 操作日志列表项
type LogEntryItem struct {
	ID            uint   `json:"id"`
	ObjectRepr    string `json:"object_repr"`
	ObjectID      string `json:"object_id"`
	ContentType   string `json:"content_type"`
	ActionFlag    int    `json:"action_flag"`
	ActionLabel   string `json:"action_label"`
	User          string `json:"user"`
	ChangeMessage string `json:"change_message"`
	ActionTime    string `json:"action_time"`
}

// LogEntryListResponse 操作日志列表响应
type LogEntryListResponse struct {
	Page Page           `json:"-"`
	List []LogEntryItem `json:"list"`
}
