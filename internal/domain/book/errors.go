package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须在0.01-999999.99元之间")

	// ErrEmptyTitle 书名为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrInvalidReference 作者或分类ID为空
	ErrInvalidReference = apperrors.New(apperrors.ErrCodeInvalidParams, "作者和分类不能为空")

	// ErrEmptySearchTerm 搜索关键词为空
	ErrEmptySearchTerm = apperrors.New(apperrors.ErrCodeInvalidParams, "搜索关键词不能为空")

	// ErrInvalidSort 未知的排序方式
	ErrInvalidSort = apperrors.New(apperrors.ErrCodeInvalidParams, "sort_by只能是price_asc或price_desc")

	// ErrInvalidMinStars 最低评分越界
	ErrInvalidMinStars = apperrors.New(apperrors.ErrCodeInvalidParams, "min_stars必须在1-5之间")
)
