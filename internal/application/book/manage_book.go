package book

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/clock"
)

// CreateBookRequest 上架请求
type CreateBookRequest struct {
	CategoryID uint
	AuthorID   uint
	Title      string
	Summary    string
	Price      int64 // 标价(分)
	CoverPhoto string
}

// CreateBookUseCase 图书上架用例(管理员)
// 作者、分类必须已存在,由领域服务校验
type CreateBookUseCase struct {
	bookService book.Service
	catalog     book.CatalogRepository
	clock       clock.Clock
}

// NewCreateBookUseCase 创建上架用例
func NewCreateBookUseCase(bookService book.Service, catalog book.CatalogRepository, clk clock.Clock) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, catalog: catalog, clock: clk}
}

// Execute 执行上架,返回带作者名、分类名和当天售价的目录条目
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookItem, error) {
	b, err := uc.bookService.CreateBook(ctx, book.CreateParams{
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Title:      req.Title,
		Summary:    req.Summary,
		Price:      req.Price,
		CoverPhoto: req.CoverPhoto,
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Uint("book_id", b.ID).Str("title", b.Title).Msg("图书已上架")
	return reload(ctx, uc.catalog, uc.clock, b.ID)
}

// UpdateBookRequest 修改请求,nil/空值表示不修改
type UpdateBookRequest struct {
	ID         uint
	CategoryID *uint
	AuthorID   *uint
	Title      string
	Summary    string
	Price      *int64
	CoverPhoto string
}

// UpdateBookUseCase 修改图书(管理员)
type UpdateBookUseCase struct {
	bookService book.Service
	catalog     book.CatalogRepository
	clock       clock.Clock
}

// NewUpdateBookUseCase 创建修改用例
func NewUpdateBookUseCase(bookService book.Service, catalog book.CatalogRepository, clk clock.Clock) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, catalog: catalog, clock: clk}
}

// Execute 执行修改
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookItem, error) {
	_, err := uc.bookService.UpdateBook(ctx, req.ID, book.UpdateParams{
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Title:      req.Title,
		Summary:    req.Summary,
		Price:      req.Price,
		CoverPhoto: req.CoverPhoto,
	})
	if err != nil {
		return nil, err
	}
	return reload(ctx, uc.catalog, uc.clock, req.ID)
}

// DeleteBookUseCase 删除图书(管理员)
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Uint("book_id", id).Msg("图书已删除")
	return nil
}

func reload(ctx context.Context, catalog book.CatalogRepository, clk clock.Clock, id uint) (*BookItem, error) {
	b, err := catalog.FindByID(ctx, id, clk.Today())
	if err != nil {
		return nil, err
	}
	item := toBookItem(b)
	return &item, nil
}
