package book_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/discount"
	"github.com/xiebiao/bookcatalog/pkg/clock"
)

func mustDiscount(t *testing.T, start, end string, price int64) *discount.Discount {
	t.Helper()
	d, err := discount.New(1, clock.MustDate(start), clock.MustDate(end), price)
	require.NoError(t, err)
	return d
}

func TestCurrentPrice(t *testing.T) {
	may := mustDiscount(t, "2024-05-01", "2024-05-31", 1000)
	mid := mustDiscount(t, "2024-05-10", "2024-05-25", 1500)
	june := mustDiscount(t, "2024-06-01", "2024-06-30", 500)
	markup := mustDiscount(t, "2024-07-01", "2024-07-01", 2500)

	tests := []struct {
		name      string
		discounts []*discount.Discount
		day       string
		want      int64
	}{
		{"没有折扣取标价", nil, "2024-05-20", 2000},
		{"重叠折扣取最低", []*discount.Discount{mid, may}, "2024-05-20", 1000},
		{"开始当天生效", []*discount.Discount{mid}, "2024-05-10", 1500},
		{"结束当天生效", []*discount.Discount{mid}, "2024-05-25", 1500},
		{"结束次日失效", []*discount.Discount{mid}, "2024-05-26", 2000},
		{"未开始的折扣不算", []*discount.Discount{june}, "2024-05-20", 2000},
		{"折扣价可以高于标价", []*discount.Discount{markup}, "2024-07-01", 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := book.CurrentPrice(2000, tt.discounts, clock.MustDate(tt.day))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentPrice_IgnoresTimeOfDay(t *testing.T) {
	d := mustDiscount(t, "2024-05-10", "2024-05-10", 900)
	late := time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, int64(900), book.CurrentPrice(2000, []*discount.Discount{d}, late))
}

// stubDiscounts 只实现ListActive
type stubDiscounts struct {
	discount.Repository
	all []*discount.Discount
}

func (s stubDiscounts) ListActive(_ context.Context, _ uint, asOf time.Time) ([]*discount.Discount, error) {
	var out []*discount.Discount
	for _, d := range s.all {
		if d.IsActiveOn(asOf) {
			out = append(out, d)
		}
	}
	return out, nil
}

func TestPriceResolver(t *testing.T) {
	repo := stubDiscounts{all: []*discount.Discount{
		mustDiscount(t, "2024-05-01", "2024-05-31", 1200),
	}}
	resolver := book.NewPriceResolver(repo)
	b := &book.Book{ID: 1, Price: 2000}

	price, err := resolver.Resolve(context.Background(), b, clock.MustDate("2024-05-20"))
	require.NoError(t, err)
	assert.Equal(t, int64(1200), price)

	price, err = resolver.Resolve(context.Background(), b, clock.MustDate("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(2000), price)
}
