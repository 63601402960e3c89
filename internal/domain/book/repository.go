package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(只有图书本身字段,不含价格计算)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除)
	Delete(ctx context.Context, id uint) error

	// Exists 图书是否存在
	Exists(ctx context.Context, id uint) (bool, error)
}
