package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
)

// Service 图书领域服务接口
// 封装跨聚合的规则:图书引用的作者和分类必须存在
type Service interface {
	// CreateBook 上架图书
	// 业务规则:
	// - 作者、分类必须存在(否则ErrAuthorNotFound/ErrCategoryNotFound)
	// - 标价在MinPrice-MaxPrice之间
	CreateBook(ctx context.Context, params CreateParams) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 修改图书,nil字段不修改
	UpdateBook(ctx context.Context, id uint, params UpdateParams) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error
}

// CreateParams 上架参数
type CreateParams struct {
	CategoryID uint
	AuthorID   uint
	Title      string
	Summary    string
	Price      int64
	CoverPhoto string
}

// UpdateParams 修改参数
type UpdateParams struct {
	CategoryID *uint
	AuthorID   *uint
	Title      string
	Summary    string
	Price      *int64
	CoverPhoto string
}

type service struct {
	repo       Repository
	authors    author.Repository
	categories category.Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository, authors author.Repository, categories category.Repository) Service {
	return &service{
		repo:       repo,
		authors:    authors,
		categories: categories,
	}
}

// CreateBook 上架图书
func (s *service) CreateBook(ctx context.Context, params CreateParams) (*Book, error) {
	b, err := NewBook(params.CategoryID, params.AuthorID, params.Title, params.Summary, params.Price, params.CoverPhoto)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, b.AuthorID, b.CategoryID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 修改图书
func (s *service) UpdateBook(ctx context.Context, id uint, params UpdateParams) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.AuthorID != nil {
		b.AuthorID = *params.AuthorID
	}
	if params.CategoryID != nil {
		b.CategoryID = *params.CategoryID
	}
	if params.AuthorID != nil || params.CategoryID != nil {
		if err := s.checkReferences(ctx, b.AuthorID, b.CategoryID); err != nil {
			return nil, err
		}
	}

	if params.Price != nil {
		if err := b.UpdatePrice(*params.Price); err != nil {
			return nil, err
		}
	}
	b.UpdateInfo(params.Title, params.Summary, params.CoverPhoto)

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// checkReferences 作者、分类存在性校验
func (s *service) checkReferences(ctx context.Context, authorID, categoryID uint) error {
	ok, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return err
	}
	if !ok {
		return author.ErrAuthorNotFound
	}

	ok, err = s.categories.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return category.ErrCategoryNotFound
	}
	return nil
}
