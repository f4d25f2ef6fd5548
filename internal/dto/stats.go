package dto

// StatusCount 按状态统计的数量
type StatusCount struct {
	Status int    `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

// ContentStats 内容统计
type ContentStats struct {
	Users      int64         `json:"users"`
	Categories []StatusCount `json:"categories"`
	Tags       []StatusCount `json:"tags"`
	Posts      []StatusCount `json:"posts"`
	LogEntries int64         `json:"log_entries"`
}
