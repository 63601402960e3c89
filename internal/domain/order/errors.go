package order

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidOrderItems 订单明细为空
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrDuplicateBook 同一本书在订单里出现多次
	ErrDuplicateBook = apperrors.New(apperrors.ErrCodeInvalidParams, "同一本书请合并为一条明细")
)
