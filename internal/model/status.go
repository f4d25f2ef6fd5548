package model

// Status 分类、标签共用的状态
type Status int

const (
	StatusDeleted Status = 0 // 删除
	StatusNormal  Status = 1 // 正常
)

// Label 状态展示名称
func (s Status) Label() string {
	switch s {
	case StatusNormal:
		return "正常"
	case StatusDeleted:
		return "删除"
	default:
		return "未知"
	}
}

// Valid 是否为合法状态
func (s Status) Valid() bool {
	return s == StatusNormal || s == StatusDeleted
}

// PostStatus 文章状态
type PostStatus int

const (
	PostStatusDeleted PostStatus = 0 // 删除
	PostStatusNormal  PostStatus = 1 // 正常
	PostStatusDraft   PostStatus = 2 // 草稿
)

// Label 状态展示名称
func (s PostStatus) Label() string {
	switch s {
	case PostStatusNormal:
		return "正常"
	case PostStatusDeleted:
		return "删除"
	case PostStatusDraft:
		return "草稿"
	default:
		return "未知"
	}
}

// Valid 是否为合法状态
func (s PostStatus) Valid() bool {
	return s == PostStatusNormal || s == PostStatusDeleted || s == PostStatusDraft
}
