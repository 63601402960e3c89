package book_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type env struct {
	fx      *dbtest.Fixture
	catalog book.CatalogRepository
	clock   clock.Clock
	opts    appbook.CatalogOptions
	service book.Service

	orwell *author.Author
	drama  *category.Category
	farm   *book.Book
	emma   *book.Book
}

func setup(t *testing.T) *env {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)

	e := &env{
		fx:      fx,
		catalog: mysql.NewCatalogRepository(db),
		clock:   clock.NewFixed(clock.MustDate("2024-05-20")),
		opts:    appbook.DefaultCatalogOptions(),
		service: book.NewService(fx.Books, fx.Authors, fx.Categories),
	}
	e.orwell = fx.Author("George Orwell")
	austen := fx.Author("Jane Austen")
	e.drama = fx.Category("Drama")

	e.farm = fx.Book("Animal Farm", e.orwell, e.drama, 2000)
	e.emma = fx.Book("Emma", austen, e.drama, 1800)
	fx.Discount(e.farm, "2024-05-01", "2024-05-31", 1000)
	fx.Discount(e.farm, "2024-05-10", "2024-05-25", 1500)
	fx.Rate(e.farm, 5, 4)
	fx.Rate(e.emma, 3)
	return e
}

func intPtr(v int) *int { return &v }

func TestListBooksUseCase(t *testing.T) {
	e := setup(t)
	uc := appbook.NewListBooksUseCase(e.catalog, e.clock, e.opts)
	ctx := context.Background()

	t.Run("分页信封", func(t *testing.T) {
		page, err := uc.Execute(ctx, appbook.ListBooksRequest{Offset: 1, Limit: intPtr(1)})
		require.NoError(t, err)
		assert.Equal(t, 2, page.PageNum)
		assert.Equal(t, int64(2), page.Total)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Emma", page.Data[0].Title)
	})

	t.Run("当天售价取最低生效折扣", func(t *testing.T) {
		page, err := uc.Execute(ctx, appbook.ListBooksRequest{SortBy: "price_asc"})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "Animal Farm", page.Data[0].Title)
		assert.Equal(t, int64(1000), page.Data[0].CurrentPrice)
		assert.Equal(t, "10.00", page.Data[0].CurrentPriceYuan)
		assert.Equal(t, "20.00", page.Data[0].PriceYuan)
	})

	t.Run("limit=0被拒绝", func(t *testing.T) {
		_, err := uc.Execute(ctx, appbook.ListBooksRequest{Limit: intPtr(0)})
		assert.ErrorIs(t, err, apperrors.ErrInvalidLimit)
	})

	t.Run("未知排序被拒绝", func(t *testing.T) {
		_, err := uc.Execute(ctx, appbook.ListBooksRequest{SortBy: "title"})
		assert.ErrorIs(t, err, book.ErrInvalidSort)
	})

	t.Run("min_stars越界", func(t *testing.T) {
		six := 6.0
		_, err := uc.Execute(ctx, appbook.ListBooksRequest{MinStars: &six})
		assert.ErrorIs(t, err, book.ErrInvalidMinStars)
	})
}

func TestListDiscountedUseCase(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	page, err := appbook.NewListDiscountedUseCase(e.catalog, e.clock, e.opts).
		Execute(ctx, appbook.ListBooksRequest{SortBy: "price_desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, e.farm.ID, page.Data[0].ID)

	quiet := clock.NewFixed(clock.MustDate("2025-01-01"))
	page, err = appbook.NewListDiscountedUseCase(e.catalog, quiet, e.opts).
		Execute(ctx, appbook.ListBooksRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.PageNum)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Data)
}

func TestSearchBooksUseCase(t *testing.T) {
	e := setup(t)
	uc := appbook.NewSearchBooksUseCase(e.catalog, e.clock, e.opts)
	ctx := context.Background()

	t.Run("大小写不敏感匹配作者名", func(t *testing.T) {
		page, err := uc.Execute(ctx, appbook.SearchBooksRequest{Query: "  ORWELL "})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, "Animal Farm", page.Data[0].Title)
	})

	t.Run("空关键词", func(t *testing.T) {
		_, err := uc.Execute(ctx, appbook.SearchBooksRequest{Query: "   "})
		assert.ErrorIs(t, err, book.ErrEmptySearchTerm)
	})
}

func TestGetBookAndPriceQuote(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	t.Run("详情", func(t *testing.T) {
		item, err := appbook.NewGetBookUseCase(e.catalog, e.clock).Execute(ctx, e.farm.ID)
		require.NoError(t, err)
		assert.Equal(t, "George Orwell", item.AuthorName)
		assert.Equal(t, "Drama", item.CategoryName)
		assert.Equal(t, int64(1000), item.CurrentPrice)
	})

	t.Run("详情不存在", func(t *testing.T) {
		item, err := appbook.NewGetBookUseCase(e.catalog, e.clock).Execute(ctx, 404)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Nil(t, item)
	})

	t.Run("报价", func(t *testing.T) {
		quote, err := appbook.NewPriceQuoteUseCase(e.catalog, e.clock).
			Execute(ctx, appbook.PriceQuoteRequest{BookID: e.farm.ID, Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(1000), quote.UnitPrice)
		assert.Equal(t, int64(3000), quote.TotalPrice)
		assert.Equal(t, "30.00", quote.TotalPriceYuan)
	})

	t.Run("报价图书不存在", func(t *testing.T) {
		_, err := appbook.NewPriceQuoteUseCase(e.catalog, e.clock).
			Execute(ctx, appbook.PriceQuoteRequest{BookID: 404, Quantity: 1})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestRankBooksUseCase(t *testing.T) {
	e := setup(t)
	uc := appbook.NewRankBooksUseCase(e.catalog, e.clock, e.opts)
	ctx := context.Background()

	t.Run("推荐", func(t *testing.T) {
		items, err := uc.Execute(ctx, appbook.RankBooksRequest{View: appbook.RankRecommended})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Animal Farm", items[0].Title)
		assert.Equal(t, 4.5, items[0].AverageRating)
		assert.Nil(t, items[0].DiscountAmount)

		body, err := json.Marshal(items[0])
		require.NoError(t, err)
		assert.NotContains(t, string(body), "discount_amount")
	})

	t.Run("折扣排行", func(t *testing.T) {
		items, err := uc.Execute(ctx, appbook.RankBooksRequest{View: appbook.RankTopDiscounted, Limit: intPtr(5)})
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.NotNil(t, items[0].DiscountAmount)
		assert.Equal(t, int64(1000), *items[0].DiscountAmount)
		assert.Equal(t, "10.00", items[0].DiscountAmountYuan)
	})

	t.Run("折扣价等于标价仍然上榜", func(t *testing.T) {
		e.fx.Discount(e.emma, "2024-05-20", "2024-05-20", 1800)

		items, err := uc.Execute(ctx, appbook.RankBooksRequest{View: appbook.RankTopDiscounted, Limit: intPtr(5)})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Animal Farm", items[0].Title)
		assert.Equal(t, "Emma", items[1].Title)
		require.NotNil(t, items[1].DiscountAmount)
		assert.Equal(t, int64(0), *items[1].DiscountAmount)

		body, err := json.Marshal(items[1])
		require.NoError(t, err)
		assert.Contains(t, string(body), `"discount_amount":0`)
		assert.Contains(t, string(body), `"discount_amount_yuan":"0.00"`)
	})

	t.Run("未知榜单", func(t *testing.T) {
		_, err := uc.Execute(ctx, appbook.RankBooksRequest{View: "newest"})
		assert.Error(t, err)
	})
}

func TestManageBookUseCases(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	create := appbook.NewCreateBookUseCase(e.service, e.catalog, e.clock)
	update := appbook.NewUpdateBookUseCase(e.service, e.catalog, e.clock)
	remove := appbook.NewDeleteBookUseCase(e.service)

	t.Run("上架", func(t *testing.T) {
		item, err := create.Execute(ctx, appbook.CreateBookRequest{
			CategoryID: e.drama.ID,
			AuthorID:   e.orwell.ID,
			Title:      "1984",
			Price:      3500,
		})
		require.NoError(t, err)
		assert.NotZero(t, item.ID)
		assert.Equal(t, "George Orwell", item.AuthorName)
		assert.Equal(t, int64(3500), item.CurrentPrice)
	})

	t.Run("作者不存在", func(t *testing.T) {
		_, err := create.Execute(ctx, appbook.CreateBookRequest{
			CategoryID: e.drama.ID,
			AuthorID:   999,
			Title:      "Ghost",
			Price:      100,
		})
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("分类不存在", func(t *testing.T) {
		_, err := create.Execute(ctx, appbook.CreateBookRequest{
			CategoryID: 999,
			AuthorID:   e.orwell.ID,
			Title:      "Ghost",
			Price:      100,
		})
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})

	t.Run("标价必须大于0", func(t *testing.T) {
		_, err := create.Execute(ctx, appbook.CreateBookRequest{
			CategoryID: e.drama.ID,
			AuthorID:   e.orwell.ID,
			Title:      "Free",
			Price:      0,
		})
		assert.ErrorIs(t, err, book.ErrInvalidPrice)
	})

	t.Run("修改标价后售价仍取折扣", func(t *testing.T) {
		price := int64(5000)
		item, err := update.Execute(ctx, appbook.UpdateBookRequest{ID: e.farm.ID, Price: &price})
		require.NoError(t, err)
		assert.Equal(t, int64(5000), item.Price)
		assert.Equal(t, int64(1000), item.CurrentPrice)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, remove.Execute(ctx, e.emma.ID))
		assert.ErrorIs(t, remove.Execute(ctx, e.emma.ID), book.ErrBookNotFound)
	})
}
