package dto

// TimeLayout 列表中时间的展示格式
const TimeLayout = "2006-01-02 15:04:05"

// Page 分页结果
type Page struct {
	Number int   `json:"page"`
	Size   int   `json:"size"`
	Total  int64 `json:"total"`
}

// AdminListRequest 后台分类、标签列表请求
type AdminListRequest struct {
	Page     int  `form:"page" binding:"omitempty,min=1"`
	PageSize int  `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   *int `form:"status" binding:"omitempty,oneof=0 1"`
}

// Lookup 过滤器下拉选项
type Lookup struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Fieldset 编辑页字段分组，Fields每一行可以放多个字段
type Fieldset struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Classes     []string   `json:"classes,omitempty"`
	Fields      [][]string `json:"fields"`
}

// InlineMeta 内联编辑配置
type InlineMeta struct {
	Model  string   `json:"model"`
	Style  string   `json:"style"`
	Fields []string `json:"fields"`
	Extra  int      `json:"extra"`
}

// ScreenMeta 后台页面展示配置
type ScreenMeta struct {
	ListDisplay      []string     `json:"list_display"`
	ListDisplayLinks []string     `json:"list_display_links"`
	ListFilter       []string     `json:"list_filter"`
	SearchFields     []string     `json:"search_fields,omitempty"`
	ActionsOnTop     bool         `json:"actions_on_top"`
	Fields           []string     `json:"fields,omitempty"`
	Fieldsets        []Fieldset   `json:"fieldsets,omitempty"`
	FilterVertical   []string     `json:"filter_vertical,omitempty"`
	Inlines          []InlineMeta `json:"inlines,omitempty"`
}
