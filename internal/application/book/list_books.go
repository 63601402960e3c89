package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// ListBooksRequest 目录列表请求
// 过滤条件为nil表示不过滤;Limit为nil时使用默认每页数量
type ListBooksRequest struct {
	Offset     int
	Limit      *int
	CategoryID *uint
	AuthorID   *uint
	MinStars   *float64
	SortBy     string // price_asc | price_desc | 空
}

func (r ListBooksRequest) query(p pagination.Params) (book.ListQuery, error) {
	q := book.ListQuery{
		Offset: p.Offset,
		Limit:  p.Limit,
		Filter: book.Filter{
			CategoryID: r.CategoryID,
			AuthorID:   r.AuthorID,
			MinStars:   r.MinStars,
		},
		Sort: book.PriceSort(r.SortBy),
	}
	if !q.Sort.Valid() {
		return q, book.ErrInvalidSort
	}
	if err := q.Filter.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

// ListBooksUseCase 目录列表用例
// 设计说明:
// 1. 售价按"今天"计算,今天来自注入的Clock
// 2. 返回{page_num, total, data}分页信封,total是分页前的匹配总数
type ListBooksUseCase struct {
	catalog book.CatalogRepository
	clock   clock.Clock
	opts    CatalogOptions
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(catalog book.CatalogRepository, clk clock.Clock, opts CatalogOptions) *ListBooksUseCase {
	return &ListBooksUseCase{catalog: catalog, clock: clk, opts: opts}
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (page *pagination.Page[BookItem], err error) {
	ctx, done := observe(ctx, "list_books")
	defer func() { done(err) }()

	p, err := uc.opts.page(req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}
	q, err := req.query(p)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.catalog.List(ctx, q, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	return toBookPage(list, total, p)
}

// ListDiscountedUseCase 当天有折扣的图书
// 只按图书ID排序,SortBy被忽略
type ListDiscountedUseCase struct {
	catalog book.CatalogRepository
	clock   clock.Clock
	opts    CatalogOptions
}

// NewListDiscountedUseCase 创建折扣图书列表用例
func NewListDiscountedUseCase(catalog book.CatalogRepository, clk clock.Clock, opts CatalogOptions) *ListDiscountedUseCase {
	return &ListDiscountedUseCase{catalog: catalog, clock: clk, opts: opts}
}

// Execute 执行折扣图书查询
func (uc *ListDiscountedUseCase) Execute(ctx context.Context, req ListBooksRequest) (page *pagination.Page[BookItem], err error) {
	ctx, done := observe(ctx, "list_discounted")
	defer func() { done(err) }()

	p, err := uc.opts.page(req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}
	req.SortBy = ""
	q, err := req.query(p)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.catalog.ListDiscounted(ctx, q, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	return toBookPage(list, total, p)
}
