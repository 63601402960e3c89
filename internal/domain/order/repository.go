package order

import (
	"context"
)

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单和明细
	// 先插入订单拿到ID,再插入明细;调用方负责放在同一个事务里
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// ListByUserID 用户的订单列表,按下单时间倒序
	ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]*Order, int64, error)
}
