package discount

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/discount"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	"github.com/xiebiao/bookcatalog/pkg/money"
)

// DiscountItem 折扣DTO
type DiscountItem struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
	Price     int64  `json:"price"`
	PriceYuan string `json:"price_yuan"`
	Active    bool   `json:"active"` // 今天是否生效
}

func toItem(d *discount.Discount, today time.Time) DiscountItem {
	return DiscountItem{
		ID:        d.ID,
		BookID:    d.BookID,
		StartDate: d.StartDate.Format(clock.DateLayout),
		EndDate:   d.EndDate.Format(clock.DateLayout),
		Price:     d.Price,
		PriceYuan: money.FormatYuan(d.Price),
		Active:    d.IsActiveOn(today),
	}
}

// parsePeriod 解析YYYY-MM-DD格式的起止日期
func parsePeriod(start, end string) (time.Time, time.Time, error) {
	s, err := clock.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, discount.ErrInvalidDate.WithCause(err)
	}
	e, err := clock.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, discount.ErrInvalidDate.WithCause(err)
	}
	return s, e, nil
}

// CreateDiscountRequest 新建折扣请求
type CreateDiscountRequest struct {
	BookID    uint
	StartDate string
	EndDate   string
	Price     int64 // 折扣价(分),不要求低于标价
}

// CreateDiscountUseCase 新建折扣(管理员)
// 同一本书的折扣时间段可以重叠,售价取当天最低的折扣价
type CreateDiscountUseCase struct {
	discounts discount.Repository
	books     book.Repository
	clock     clock.Clock
}

// NewCreateDiscountUseCase 创建用例
func NewCreateDiscountUseCase(discounts discount.Repository, books book.Repository, clk clock.Clock) *CreateDiscountUseCase {
	return &CreateDiscountUseCase{discounts: discounts, books: books, clock: clk}
}

// Execute 图书不存在返回ErrBookNotFound
func (uc *CreateDiscountUseCase) Execute(ctx context.Context, req CreateDiscountRequest) (*DiscountItem, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	d, err := discount.New(req.BookID, start, end, req.Price)
	if err != nil {
		return nil, err
	}

	ok, err := uc.books.Exists(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, book.ErrBookNotFound
	}

	if err := uc.discounts.Create(ctx, d); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Uint("discount_id", d.ID).
		Uint("book_id", d.BookID).
		Int64("price", d.Price).
		Str("start", req.StartDate).
		Str("end", req.EndDate).
		Msg("折扣已创建")

	item := toItem(d, uc.clock.Today())
	return &item, nil
}

// UpdateDiscountRequest 修改请求,起止日期和价格整体替换
type UpdateDiscountRequest struct {
	ID        uint
	StartDate string
	EndDate   string
	Price     int64
}

// UpdateDiscountUseCase 修改折扣(管理员)
type UpdateDiscountUseCase struct {
	discounts discount.Repository
	clock     clock.Clock
}

// NewUpdateDiscountUseCase 创建用例
func NewUpdateDiscountUseCase(discounts discount.Repository, clk clock.Clock) *UpdateDiscountUseCase {
	return &UpdateDiscountUseCase{discounts: discounts, clock: clk}
}

// Execute 执行修改
func (uc *UpdateDiscountUseCase) Execute(ctx context.Context, req UpdateDiscountRequest) (*DiscountItem, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	d, err := uc.discounts.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := d.Reschedule(start, end, req.Price); err != nil {
		return nil, err
	}
	if err := uc.discounts.Update(ctx, d); err != nil {
		return nil, err
	}

	item := toItem(d, uc.clock.Today())
	return &item, nil
}

// DeleteDiscountUseCase 删除折扣(管理员)
type DeleteDiscountUseCase struct {
	discounts discount.Repository
}

// NewDeleteDiscountUseCase 创建用例
func NewDeleteDiscountUseCase(discounts discount.Repository) *DeleteDiscountUseCase {
	return &DeleteDiscountUseCase{discounts: discounts}
}

// Execute 执行删除
func (uc *DeleteDiscountUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.discounts.Delete(ctx, id); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Uint("discount_id", id).Msg("折扣已删除")
	return nil
}

// BookDiscountsResponse 图书折扣列表
type BookDiscountsResponse struct {
	BookID           uint           `json:"book_id"`
	Price            int64          `json:"price"`         // 标价(分)
	CurrentPrice     int64          `json:"current_price"` // 今天售价(分)
	CurrentPriceYuan string         `json:"current_price_yuan"`
	Discounts        []DiscountItem `json:"discounts"`
}

// ListBookDiscountsUseCase 图书的全部折扣(含已过期和未开始的)
type ListBookDiscountsUseCase struct {
	discounts discount.Repository
	books     book.Repository
	resolver  *book.PriceResolver
	clock     clock.Clock
}

// NewListBookDiscountsUseCase 创建用例
func NewListBookDiscountsUseCase(
	discounts discount.Repository,
	books book.Repository,
	resolver *book.PriceResolver,
	clk clock.Clock,
) *ListBookDiscountsUseCase {
	return &ListBookDiscountsUseCase{
		discounts: discounts,
		books:     books,
		resolver:  resolver,
		clock:     clk,
	}
}

// Execute 执行查询
func (uc *ListBookDiscountsUseCase) Execute(ctx context.Context, bookID uint) (*BookDiscountsResponse, error) {
	b, err := uc.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	current, err := uc.resolver.Resolve(ctx, b, today)
	if err != nil {
		return nil, err
	}

	list, err := uc.discounts.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	items := make([]DiscountItem, len(list))
	for i, d := range list {
		items[i] = toItem(d, today)
	}

	return &BookDiscountsResponse{
		BookID:           b.ID,
		Price:            b.Price,
		CurrentPrice:     current,
		CurrentPriceYuan: money.FormatYuan(current),
		Discounts:        items,
	}, nil
}
