// Package pagination 分页信封
//
// 调用方传入offset/limit（不是页码），响应里统一返回 {page_num, total, data}：
//
//	page_num = offset / limit + 1
//
// total永远是分页之前的匹配总数。
package pagination

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const (
	// DefaultLimit 未指定limit时的每页数量
	DefaultLimit = 10
	// MaxLimit 每页数量上限
	MaxLimit = 100
)

// ErrInvalidLimit limit<=0（page_num会除零）
var ErrInvalidLimit = apperrors.ErrInvalidLimit

// ErrLimitTooLarge limit超过max
var ErrLimitTooLarge = apperrors.ErrLimitTooLarge

// Params offset/limit查询参数
type Params struct {
	Offset int
	Limit  int
}

// Validate 校验offset/limit
func (p Params) Validate() error {
	if p.Limit <= 0 {
		return ErrInvalidLimit
	}
	if p.Offset < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "offset不能为负数")
	}
	return nil
}

// PageNum 1-based页码
func (p Params) PageNum() int {
	return p.Offset/p.Limit + 1
}

// Page 分页信封
type Page[T any] struct {
	PageNum int   `json:"page_num"`
	Total   int64 `json:"total"`
	Data    []T   `json:"data"`
}

// Paginate 包装一页结果
// items为nil时序列化为[]，不返回null
func Paginate[T any](total int64, items []T, offset, limit int) (*Page[T], error) {
	p := Params{Offset: offset, Limit: limit}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		PageNum: p.PageNum(),
		Total:   total,
		Data:    items,
	}, nil
}

// Empty 空页(total=0)
func Empty[T any](offset, limit int) (*Page[T], error) {
	return Paginate[T](0, nil, offset, limit)
}

// Map 转换每一项，保留页码和总数
func Map[S, T any](page *Page[S], fn func(S) T) *Page[T] {
	out := make([]T, len(page.Data))
	for i, item := range page.Data {
		out[i] = fn(item)
	}
	return &Page[T]{
		PageNum: page.PageNum,
		Total:   page.Total,
		Data:    out,
	}
}

// Resolve 请求参数 → Params
// limit为nil时取def；显式给出时必须在[1, max]之间，0不会被当成"未设置"
func Resolve(offset int, limit *int, def, max int) (Params, error) {
	p := Params{Offset: offset, Limit: def}
	if limit != nil {
		if *limit > max {
			return Params{}, ErrLimitTooLarge
		}
		p.Limit = *limit
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
