package discount_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdiscount "github.com/xiebiao/bookcatalog/internal/application/discount"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/discount"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/bookcatalog/pkg/clock"
)

func TestDiscountUseCases(t *testing.T) {
	fx := dbtest.NewFixture(t, dbtest.Open(t))
	ctx := context.Background()
	clk := clock.NewFixed(clock.MustDate("2024-05-20"))

	farm := fx.Book("Animal Farm", fx.Author("George Orwell"), fx.Category("Fiction"), 2000)

	create := appdiscount.NewCreateDiscountUseCase(fx.Discounts, fx.Books, clk)
	update := appdiscount.NewUpdateDiscountUseCase(fx.Discounts, clk)
	remove := appdiscount.NewDeleteDiscountUseCase(fx.Discounts)
	list := appdiscount.NewListBookDiscountsUseCase(fx.Discounts, fx.Books, book.NewPriceResolver(fx.Discounts), clk)

	may, err := create.Execute(ctx, appdiscount.CreateDiscountRequest{
		BookID: farm.ID, StartDate: "2024-05-01", EndDate: "2024-05-31", Price: 1500,
	})
	require.NoError(t, err)
	assert.True(t, may.Active)
	assert.Equal(t, "15.00", may.PriceYuan)

	t.Run("参数校验", func(t *testing.T) {
		tests := []struct {
			name    string
			req     appdiscount.CreateDiscountRequest
			wantErr error
		}{
			{"日期格式错误", appdiscount.CreateDiscountRequest{BookID: farm.ID, StartDate: "2024/05/01", EndDate: "2024-05-31", Price: 100}, discount.ErrInvalidDate},
			{"结束早于开始", appdiscount.CreateDiscountRequest{BookID: farm.ID, StartDate: "2024-05-31", EndDate: "2024-05-01", Price: 100}, discount.ErrInvalidPeriod},
			{"折扣价为0", appdiscount.CreateDiscountRequest{BookID: farm.ID, StartDate: "2024-05-01", EndDate: "2024-05-31", Price: 0}, discount.ErrInvalidPrice},
			{"图书不存在", appdiscount.CreateDiscountRequest{BookID: 999, StartDate: "2024-05-01", EndDate: "2024-05-31", Price: 100}, book.ErrBookNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := create.Execute(ctx, tt.req)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("单日折扣两端都生效", func(t *testing.T) {
		today, err := create.Execute(ctx, appdiscount.CreateDiscountRequest{
			BookID: farm.ID, StartDate: "2024-05-20", EndDate: "2024-05-20", Price: 1200,
		})
		require.NoError(t, err)
		assert.True(t, today.Active)
	})

	t.Run("列表和当天售价", func(t *testing.T) {
		_, err := create.Execute(ctx, appdiscount.CreateDiscountRequest{
			BookID: farm.ID, StartDate: "2024-06-01", EndDate: "2024-06-30", Price: 100,
		})
		require.NoError(t, err)

		resp, err := list.Execute(ctx, farm.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), resp.Price)
		assert.Equal(t, int64(1200), resp.CurrentPrice)
		require.Len(t, resp.Discounts, 3)
		assert.Equal(t, "2024-05-01", resp.Discounts[0].StartDate)
		assert.False(t, resp.Discounts[2].Active)
	})

	t.Run("修改后售价变化", func(t *testing.T) {
		got, err := update.Execute(ctx, appdiscount.UpdateDiscountRequest{
			ID: may.ID, StartDate: "2024-05-01", EndDate: "2024-05-31", Price: 900,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(900), got.Price)

		resp, err := list.Execute(ctx, farm.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(900), resp.CurrentPrice)
	})

	t.Run("修改不存在的折扣", func(t *testing.T) {
		_, err := update.Execute(ctx, appdiscount.UpdateDiscountRequest{
			ID: 999, StartDate: "2024-05-01", EndDate: "2024-05-31", Price: 900,
		})
		assert.ErrorIs(t, err, discount.ErrDiscountNotFound)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, remove.Execute(ctx, may.ID))
		assert.ErrorIs(t, remove.Execute(ctx, may.ID), discount.ErrDiscountNotFound)
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := list.Execute(ctx, 999)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}
