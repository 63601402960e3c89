package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	"github.com/xiebiao/bookcatalog/pkg/money"
)

// GetBookUseCase 图书详情(含当天售价)
type GetBookUseCase struct {
	catalog book.CatalogRepository
	clock   clock.Clock
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(catalog book.CatalogRepository, clk clock.Clock) *GetBookUseCase {
	return &GetBookUseCase{catalog: catalog, clock: clk}
}

// Execute 不存在返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (item *BookItem, err error) {
	ctx, done := observe(ctx, "get_book")
	defer func() { done(err) }()

	b, err := uc.catalog.FindByID(ctx, id, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	result := toBookItem(b)
	return &result, nil
}

// PriceQuoteRequest 报价请求
type PriceQuoteRequest struct {
	BookID   uint
	Quantity int
}

// PriceQuoteResponse 报价响应
type PriceQuoteResponse struct {
	BookID         uint   `json:"book_id"`
	Quantity       int    `json:"quantity"`
	UnitPrice      int64  `json:"unit_price"`
	TotalPrice     int64  `json:"total_price"`
	TotalPriceYuan string `json:"total_price_yuan"`
}

// PriceQuoteUseCase 报价:当天售价 × 数量
// 数量的合法性由接口层校验,这里不检查
type PriceQuoteUseCase struct {
	catalog book.CatalogRepository
	clock   clock.Clock
}

// NewPriceQuoteUseCase 创建报价用例
func NewPriceQuoteUseCase(catalog book.CatalogRepository, clk clock.Clock) *PriceQuoteUseCase {
	return &PriceQuoteUseCase{catalog: catalog, clock: clk}
}

// Execute 执行报价
func (uc *PriceQuoteUseCase) Execute(ctx context.Context, req PriceQuoteRequest) (resp *PriceQuoteResponse, err error) {
	ctx, done := observe(ctx, "price_quote")
	defer func() { done(err) }()

	b, err := uc.catalog.FindByID(ctx, req.BookID, uc.clock.Today())
	if err != nil {
		return nil, err
	}

	total := b.CurrentPrice * int64(req.Quantity)
	return &PriceQuoteResponse{
		BookID:         b.ID,
		Quantity:       req.Quantity,
		UnitPrice:      b.CurrentPrice,
		TotalPrice:     total,
		TotalPriceYuan: money.FormatYuan(total),
	}, nil
}
