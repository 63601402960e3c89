package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/discount"
)

// CurrentPrice 当天售价
// asOf当天生效(闭区间)的折扣中取最低折扣价,没有生效折扣时返回标价
func CurrentPrice(listPrice int64, discounts []*discount.Discount, asOf time.Time) int64 {
	price := listPrice
	found := false
	for _, d := range discounts {
		if !d.IsActiveOn(asOf) {
			continue
		}
		if !found || d.Price < price {
			price = d.Price
			found = true
		}
	}
	return price
}

// PriceResolver 逐本计算售价(折扣列表 + CurrentPrice)
// 目录查询使用SQL子查询计算同一个值,两条路径结果必须一致
type PriceResolver struct {
	discounts discount.Repository
}

// NewPriceResolver 创建售价计算器
func NewPriceResolver(discounts discount.Repository) *PriceResolver {
	return &PriceResolver{discounts: discounts}
}

// Resolve 计算单本图书当天售价
func (r *PriceResolver) Resolve(ctx context.Context, b *Book, asOf time.Time) (int64, error) {
	active, err := r.discounts.ListActive(ctx, b.ID, asOf)
	if err != nil {
		return 0, err
	}
	return CurrentPrice(b.Price, active, asOf), nil
}
