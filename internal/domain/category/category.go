package category

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Category 图书分类
type Category struct {
	ID          uint
	Name        string // 分类名(唯一)
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类
func NewCategory(name, description string) (*Category, error) {
	c := &Category{Description: description}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename 修改分类名
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrCategoryDuplicate 分类名已存在
	ErrCategoryDuplicate = apperrors.New(apperrors.ErrCodeCategoryDuplicate, "分类名已存在")

	// ErrEmptyName 分类名为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名不能为空")

	// ErrCategoryInUse 还有图书引用,不能删除
	ErrCategoryInUse = apperrors.New(apperrors.ErrCodeResourceInUse, "该分类下还有图书,不能删除")
)

// Repository 分类仓储接口
// Delete仍被图书引用时返回ErrCategoryInUse
// Create/Update遇到重名返回ErrCategoryDuplicate
type Repository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context, offset, limit int) ([]*Category, int64, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}
