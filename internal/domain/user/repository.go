package user

import (
	"context"
)

// Repository 用户仓储接口
// 1. 接口定义在domain层,具体实现在infrastructure/persistence/mysql
// 2. 邮箱唯一性由数据库UNIQUE索引保证
type Repository interface {
	// Create 创建用户,邮箱已存在返回errors.ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在返回errors.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新用户,邮箱与其他用户冲突返回errors.ErrEmailDuplicate
	Update(ctx context.Context, user *User) error

	// Delete 删除用户
	Delete(ctx context.Context, id uint) error

	// List 用户列表,按ID升序
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
}
