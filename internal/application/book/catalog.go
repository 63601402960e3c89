package book

import (
	"context"
	"math"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/money"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "catalog"

// CatalogOptions 目录查询参数(来自配置catalog.*)
type CatalogOptions struct {
	DefaultLimit int // 列表默认每页数量
	MaxLimit     int // 列表每页数量上限
	RankingLimit int // 排行榜默认条数
}

// DefaultCatalogOptions 与配置默认值一致
func DefaultCatalogOptions() CatalogOptions {
	return CatalogOptions{
		DefaultLimit: pagination.DefaultLimit,
		MaxLimit:     pagination.MaxLimit,
		RankingLimit: 10,
	}
}

func (o CatalogOptions) page(offset int, limit *int) (pagination.Params, error) {
	return pagination.Resolve(offset, limit, o.DefaultLimit, o.MaxLimit)
}

// BookItem 目录条目DTO
// price是标价,current_price是当天售价(有生效折扣时取最低折扣价)
type BookItem struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Summary          string `json:"summary"`
	CoverPhoto       string `json:"cover_photo"`
	CategoryID       uint   `json:"category_id"`
	CategoryName     string `json:"category_name"`
	AuthorID         uint   `json:"author_id"`
	AuthorName       string `json:"author_name"`
	Price            int64  `json:"price"` // 标价(分)
	PriceYuan        string `json:"price_yuan"`
	CurrentPrice     int64  `json:"current_price"` // 当天售价(分)
	CurrentPriceYuan string `json:"current_price_yuan"`
}

// RankedItem 排行榜条目DTO
type RankedItem struct {
	BookItem
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
	// 只有折扣榜有值,折扣价等于标价时为0
	DiscountAmount     *int64 `json:"discount_amount,omitempty"`
	DiscountAmountYuan string `json:"discount_amount_yuan,omitempty"`
}

func toBookItem(b *book.CatalogBook) BookItem {
	return BookItem{
		ID:               b.ID,
		Title:            b.Title,
		Summary:          b.Summary,
		CoverPhoto:       b.CoverPhoto,
		CategoryID:       b.CategoryID,
		CategoryName:     b.CategoryName,
		AuthorID:         b.AuthorID,
		AuthorName:       b.AuthorName,
		Price:            b.ListPrice,
		PriceYuan:        money.FormatYuan(b.ListPrice),
		CurrentPrice:     b.CurrentPrice,
		CurrentPriceYuan: money.FormatYuan(b.CurrentPrice),
	}
}

func toBookPage(list []*book.CatalogBook, total int64, p pagination.Params) (*pagination.Page[BookItem], error) {
	items := make([]BookItem, len(list))
	for i, b := range list {
		items[i] = toBookItem(b)
	}
	return pagination.Paginate(total, items, p.Offset, p.Limit)
}

// roundRating 平均分保留两位小数(展示用)
func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}

// observe 目录查询的Span和指标
//
//	ctx, done := observe(ctx, "list_books")
//	defer func() { done(err) }()
func observe(ctx context.Context, operation string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, operation)
	return ctx, func(err error) {
		tracing.EndSpan(span, err)
		metrics.ObserveCatalogQuery(operation, start, err)
	}
}
