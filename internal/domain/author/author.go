package author

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Author 作者
type Author struct {
	ID        uint
	Name      string // 作者名(唯一)
	Bio       string // 简介
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者
func NewAuthor(name, bio string) (*Author, error) {
	a := &Author{Bio: bio}
	if err := a.Rename(name); err != nil {
		return nil, err
	}
	return a, nil
}

// Rename 修改作者名
func (a *Author) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	return nil
}

var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrAuthorDuplicate 作者名已存在
	ErrAuthorDuplicate = apperrors.New(apperrors.ErrCodeAuthorDuplicate, "作者名已存在")

	// ErrEmptyName 作者名为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "作者名不能为空")

	// ErrAuthorInUse 还有图书引用,不能删除
	ErrAuthorInUse = apperrors.New(apperrors.ErrCodeResourceInUse, "该作者下还有图书,不能删除")
)

// Repository 作者仓储接口
// Delete仍被图书引用时返回ErrAuthorInUse
// Create/Update遇到重名返回ErrAuthorDuplicate
type Repository interface {
	Create(ctx context.Context, a *Author) error
	FindByID(ctx context.Context, id uint) (*Author, error)
	List(ctx context.Context, offset, limit int) ([]*Author, int64, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}
