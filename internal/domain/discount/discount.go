// Package discount 限时折扣
//
// 一本书可以有零个或多个折扣,时间段可以重叠;
// 折扣在[StartDate, EndDate]闭区间内生效,折扣价不要求低于标价。
package discount

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Discount 折扣
// StartDate/EndDate只使用年月日(UTC零点)
type Discount struct {
	ID        uint
	BookID    uint
	StartDate time.Time
	EndDate   time.Time
	Price     int64 // 折扣价(分)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New 创建折扣
func New(bookID uint, start, end time.Time, price int64) (*Discount, error) {
	d := &Discount{BookID: bookID}
	if err := d.Reschedule(start, end, price); err != nil {
		return nil, err
	}
	return d, nil
}

// Reschedule 修改折扣时间段和价格
func (d *Discount) Reschedule(start, end time.Time, price int64) error {
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		return ErrInvalidPeriod
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	d.StartDate = start
	d.EndDate = end
	d.Price = price
	d.UpdatedAt = time.Now()
	return nil
}

// IsActiveOn 在day当天是否生效(两端都包含)
func (d *Discount) IsActiveOn(day time.Time) bool {
	day = dateOnly(day)
	return !day.Before(d.StartDate) && !day.After(d.EndDate)
}

func dateOnly(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

var (
	// ErrDiscountNotFound 折扣不存在
	ErrDiscountNotFound = apperrors.New(apperrors.ErrCodeDiscountNotFound, "折扣不存在")

	// ErrInvalidPeriod 结束日期早于开始日期
	ErrInvalidPeriod = apperrors.New(apperrors.ErrCodeInvalidParams, "结束日期不能早于开始日期")

	// ErrInvalidDate 日期格式错误
	ErrInvalidDate = apperrors.New(apperrors.ErrCodeInvalidParams, "日期格式必须是YYYY-MM-DD")

	// ErrInvalidPrice 折扣价必须大于0
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "折扣价必须大于0")
)

// Repository 折扣仓储接口
type Repository interface {
	Create(ctx context.Context, d *Discount) error
	FindByID(ctx context.Context, id uint) (*Discount, error)
	Update(ctx context.Context, d *Discount) error
	Delete(ctx context.Context, id uint) error

	// ListByBook 图书的全部折扣,按开始日期升序
	ListByBook(ctx context.Context, bookID uint) ([]*Discount, error)

	// ListActive 图书在asOf当天生效的折扣
	ListActive(ctx context.Context, bookID uint, asOf time.Time) ([]*Discount, error)
}
