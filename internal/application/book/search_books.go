package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// SearchBooksRequest 搜索请求
type SearchBooksRequest struct {
	Query  string
	Offset int
	Limit  *int
}

// SearchBooksUseCase 按书名或作者名搜索(不区分大小写的子串匹配)
type SearchBooksUseCase struct {
	catalog book.CatalogRepository
	clock   clock.Clock
	opts    CatalogOptions
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(catalog book.CatalogRepository, clk clock.Clock, opts CatalogOptions) *SearchBooksUseCase {
	return &SearchBooksUseCase{catalog: catalog, clock: clk, opts: opts}
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (page *pagination.Page[BookItem], err error) {
	ctx, done := observe(ctx, "search")
	defer func() { done(err) }()

	term, err := book.NormalizeSearchTerm(req.Query)
	if err != nil {
		return nil, err
	}
	p, err := uc.opts.page(req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.catalog.Search(ctx, term, p.Offset, p.Limit, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	return toBookPage(list, total, p)
}
