package service

import (
	"strconv"

	"github.com/Owenun/Windy/internal/dto"
	"gorm.io/gorm"
)

// numPages 总页数，空列表也算一页
func numPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// parsePage 解析前台页码：空值为第一页，"last"为最后一页，
// 非数字、小于1或超过总页数返回ErrPageNotFound
func parsePage(raw string, total int64, size int) (int, error) {
	last := numPages(total, size)
	switch raw {
	case "":
		return 1, nil
	case "last":
		return last, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > last {
		return 0, ErrPageNotFound
	}
	return n, nil
}

// findPage 取出第number页，order与preloads只作用于取数，不影响计数
func findPage(q *gorm.DB, number, size int, dest interface{}, order string, preloads ...string) error {
	find := q.Order(order).Offset((number - 1) * size).Limit(size)
	for _, p := range preloads {
		find = find.Preload(p)
	}
	return find.Find(dest).Error
}

// fetchPage 后台分页，页码越界时返回空列表
func fetchPage(q *gorm.DB, number, size int, dest interface{}, order string, preloads ...string) (int64, error) {
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := findPage(q, number, size, dest, order, preloads...); err != nil {
		return 0, err
	}
	return total, nil
}

// paginatePublic 前台分页，先按总数校验页码
func paginatePublic(q *gorm.DB, raw string, size int, dest interface{}, order string, preloads ...string) (dto.Page, error) {
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return dto.Page{}, err
	}
	number, err := parsePage(raw, total, size)
	if err != nil {
		return dto.Page{}, err
	}
	if err := findPage(q, number, size, dest, order, preloads...); err != nil {
		return dto.Page{}, err
	}
	return dto.Page{Number: number, Size: size, Total: total}, nil
}

// normalizeAdminPage 后台分页参数默认值
func normalizeAdminPage(page, pageSize, defaultSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}
