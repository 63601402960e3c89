package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/money"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// RankView 榜单
type RankView string

const (
	// RankRecommended 平均评分最高
	RankRecommended RankView = "recommended"
	// RankPopular 评论最多
	RankPopular RankView = "popular"
	// RankTopDiscounted 折扣金额最大
	RankTopDiscounted RankView = "top_discounted"
)

// RankBooksRequest 榜单请求
type RankBooksRequest struct {
	View  RankView
	Limit *int // nil时使用catalog.ranking_limit
}

// RankBooksUseCase 排行榜用例
// 返回普通列表,不分页
type RankBooksUseCase struct {
	catalog book.CatalogRepository
	clock   clock.Clock
	opts    CatalogOptions
}

// NewRankBooksUseCase 创建排行榜用例
func NewRankBooksUseCase(catalog book.CatalogRepository, clk clock.Clock, opts CatalogOptions) *RankBooksUseCase {
	return &RankBooksUseCase{catalog: catalog, clock: clk, opts: opts}
}

// Execute 执行榜单查询
func (uc *RankBooksUseCase) Execute(ctx context.Context, req RankBooksRequest) (items []RankedItem, err error) {
	ctx, done := observe(ctx, string(req.View))
	defer func() { done(err) }()

	p, err := pagination.Resolve(0, req.Limit, uc.opts.RankingLimit, uc.opts.MaxLimit)
	if err != nil {
		return nil, err
	}

	var query func(context.Context, int, time.Time) ([]*book.RankedBook, error)
	switch req.View {
	case RankRecommended:
		query = uc.catalog.Recommended
	case RankPopular:
		query = uc.catalog.Popular
	case RankTopDiscounted:
		query = uc.catalog.TopDiscounted
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "未知的榜单: "+string(req.View))
	}

	list, err := query(ctx, p.Limit, uc.clock.Today())
	if err != nil {
		return nil, err
	}

	items = make([]RankedItem, len(list))
	for i, b := range list {
		items[i] = RankedItem{
			BookItem:      toBookItem(&b.CatalogBook),
			AverageRating: roundRating(b.AvgRating),
			ReviewCount:   b.ReviewCount,
		}
		if req.View == RankTopDiscounted {
			amount := b.DiscountAmount
			items[i].DiscountAmount = &amount
			items[i].DiscountAmountYuan = money.FormatYuan(b.DiscountAmount)
		}
	}
	return items, nil
}
