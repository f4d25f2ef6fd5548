package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 记录不存在或不属于当前用户
	ErrNotFound = errors.New("记录不存在")

	ErrCategoryNotFound = fmt.Errorf("分类不存在: %w", ErrNotFound)
	ErrTagNotFound      = fmt.Errorf("标签不存在: %w", ErrNotFound)
	ErrPostNotFound     = fmt.Errorf("文章不存在: %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("用户不存在: %w", ErrNotFound)
	// ErrPageNotFound 页码非法或超出范围
	ErrPageNotFound = fmt.Errorf("页码无效: %w", ErrNotFound)

	// ErrInvalidCategory 文章引用的分类不存在
	ErrInvalidCategory = errors.New("分类无效")
	// ErrInvalidTag 文章引用的标签不存在
	ErrInvalidTag = errors.New("标签无效")
	// ErrInvalidStatus 状态值不在取值范围内
	ErrInvalidStatus = errors.New("状态无效")
	// ErrInvalidInlinePost 内联文章不属于该分类或当前用户
	ErrInvalidInlinePost = errors.New("内联文章无效")

	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUsernameTaken      = errors.New("用户名已存在")
)

// notFoundAs 把基类返回的ErrNotFound换成具体对象的错误
func notFoundAs(err, target error) error {
	if errors.Is(err, ErrNotFound) {
		return target
	}
	return err
}
