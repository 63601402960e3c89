package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/clock"
)

// catalogFixture 四本书:
//
//	Animal Farm         Orwell  Fiction  20.00  折扣10.00/15.00生效  评分5,4
//	1984                Orwell  Classic  35.00  无折扣              评分5,5,4
//	Pride and Prejudice Austen  Classic  25.00  折扣20.00仅今天生效  评分3,3
//	Emma                Austen  Fiction  18.00  无折扣              无评论
type catalogFixture struct {
	repo  book.CatalogRepository
	fx    *dbtest.Fixture
	today time.Time

	farm, nineteen, pride, emma *book.Book
	fiction, classic            uint
	orwell, austen              uint
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)

	orwell := fx.Author("George Orwell")
	austen := fx.Author("Jane Austen")
	fiction := fx.Category("Fiction")
	classic := fx.Category("Classic")

	c := &catalogFixture{
		repo:    mysql.NewCatalogRepository(db),
		fx:      fx,
		today:   clock.MustDate("2024-05-20"),
		fiction: fiction.ID,
		classic: classic.ID,
		orwell:  orwell.ID,
		austen:  austen.ID,
	}

	c.farm = fx.Book("Animal Farm", orwell, fiction, 2000)
	c.nineteen = fx.Book("1984", orwell, classic, 3500)
	c.pride = fx.Book("Pride and Prejudice", austen, classic, 2500)
	c.emma = fx.Book("Emma", austen, fiction, 1800)

	fx.Discount(c.farm, "2024-05-01", "2024-05-31", 1000)
	fx.Discount(c.farm, "2024-05-15", "2024-05-20", 1500)
	fx.Discount(c.farm, "2024-04-01", "2024-05-19", 500) // 昨天结束
	fx.Discount(c.farm, "2024-05-21", "2024-06-01", 300) // 明天开始
	fx.Discount(c.pride, "2024-05-20", "2024-05-20", 2000)

	fx.Rate(c.farm, 5, 4)
	fx.Rate(c.nineteen, 5, 5, 4)
	fx.Rate(c.pride, 3, 3)

	return c
}

func titles(list []*book.CatalogBook) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Title
	}
	return out
}

func rankedTitles(list []*book.RankedBook) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Title
	}
	return out
}

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestCatalogRepository_List(t *testing.T) {
	c := newCatalogFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		query     book.ListQuery
		wantTotal int64
		want      []string
	}{
		{
			name:      "默认按ID升序",
			query:     book.ListQuery{Limit: 10},
			wantTotal: 4,
			want:      []string{"Animal Farm", "1984", "Pride and Prejudice", "Emma"},
		},
		{
			name:      "按当天售价升序",
			query:     book.ListQuery{Limit: 10, Sort: book.SortPriceAsc},
			wantTotal: 4,
			want:      []string{"Animal Farm", "Emma", "Pride and Prejudice", "1984"},
		},
		{
			name:      "按当天售价降序",
			query:     book.ListQuery{Limit: 10, Sort: book.SortPriceDesc},
			wantTotal: 4,
			want:      []string{"1984", "Pride and Prejudice", "Emma", "Animal Farm"},
		},
		{
			name:      "按分类过滤",
			query:     book.ListQuery{Limit: 10, Filter: book.Filter{CategoryID: &c.classic}},
			wantTotal: 2,
			want:      []string{"1984", "Pride and Prejudice"},
		},
		{
			name:      "按作者过滤",
			query:     book.ListQuery{Limit: 10, Filter: book.Filter{AuthorID: &c.austen}},
			wantTotal: 2,
			want:      []string{"Pride and Prejudice", "Emma"},
		},
		{
			name:      "最低评分排除没有评论的图书",
			query:     book.ListQuery{Limit: 10, Filter: book.Filter{MinStars: floatPtr(4)}},
			wantTotal: 2,
			want:      []string{"Animal Farm", "1984"},
		},
		{
			name: "组合过滤",
			query: book.ListQuery{Limit: 10, Filter: book.Filter{
				CategoryID: &c.classic,
				MinStars:   floatPtr(4),
			}},
			wantTotal: 1,
			want:      []string{"1984"},
		},
		{
			name:      "分页不影响总数",
			query:     book.ListQuery{Offset: 2, Limit: 1},
			wantTotal: 4,
			want:      []string{"Pride and Prejudice"},
		},
		{
			name:      "不存在的分类",
			query:     book.ListQuery{Limit: 10, Filter: book.Filter{CategoryID: uintPtr(999)}},
			wantTotal: 0,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := c.repo.List(ctx, tt.query, c.today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.want, titles(list))
		})
	}
}

func TestCatalogRepository_CountMatchesRows(t *testing.T) {
	c := newCatalogFixture(t)
	ctx := context.Background()

	filters := []book.Filter{
		{},
		{CategoryID: &c.fiction},
		{AuthorID: &c.orwell},
		{MinStars: floatPtr(3)},
		{MinStars: floatPtr(4.6)},
		{AuthorID: &c.austen, MinStars: floatPtr(1)},
	}

	for _, f := range filters {
		for _, offset := range []int{0, 1, 3} {
			q := book.ListQuery{Offset: offset, Limit: 2, Filter: f}
			_, total, err := c.repo.List(ctx, q, c.today)
			require.NoError(t, err)

			all, _, err := c.repo.List(ctx, book.ListQuery{Limit: 100, Filter: f}, c.today)
			require.NoError(t, err)
			assert.Equal(t, int64(len(all)), total, "filter=%+v offset=%d", f, offset)

			_, dTotal, err := c.repo.ListDiscounted(ctx, q, c.today)
			require.NoError(t, err)
			dAll, _, err := c.repo.ListDiscounted(ctx, book.ListQuery{Limit: 100, Filter: f}, c.today)
			require.NoError(t, err)
			assert.Equal(t, int64(len(dAll)), dTotal, "discounted filter=%+v offset=%d", f, offset)
		}
	}
}

func TestCatalogRepository_CurrentPrice(t *testing.T) {
	c := newCatalogFixture(t)
	ctx := context.Background()

	t.Run("多个折扣重叠取最低价", func(t *testing.T) {
		got, err := c.repo.FindByID(ctx, c.farm.ID, c.today)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), got.ListPrice)
		assert.Equal(t, int64(1000), got.CurrentPrice)
		assert.Equal(t, "George Orwell", got.AuthorName)
		assert.Equal(t, "Fiction", got.CategoryName)
	})

	t.Run("没有折扣按标价", func(t *testing.T) {
		got, err := c.repo.FindByID(ctx, c.emma.ID, c.today)
		require.NoError(t, err)
		assert.Equal(t, got.ListPrice, got.CurrentPrice)
	})

	t.Run("折扣在开始和结束当天都生效", func(t *testing.T) {
		got, err := c.repo.FindByID(ctx, c.pride.ID, c.today)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), got.CurrentPrice)

		got, err = c.repo.FindByID(ctx, c.farm.ID, clock.MustDate("2024-05-19"))
		require.NoError(t, err)
		assert.Equal(t, int64(500), got.CurrentPrice)

		got, err = c.repo.FindByID(ctx, c.farm.ID, clock.MustDate("2024-05-21"))
		require.NoError(t, err)
		assert.Equal(t, int64(300), got.CurrentPrice)
	})

	t.Run("不存在的图书", func(t *testing.T) {
		got, err := c.repo.FindByID(ctx, 9999, c.today)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Nil(t, got)
	})

	t.Run("批量取价忽略不存在的ID", func(t *testing.T) {
		prices, err := c.repo.CurrentPrices(ctx, []uint{c.farm.ID, c.nineteen.ID, 9999}, c.today)
		require.NoError(t, err)
		assert.Equal(t, map[uint]int64{c.farm.ID: 1000, c.nineteen.ID: 3500}, prices)
	})
}

// 逐本计算(PriceResolver)与SQL子查询的结果必须一致
func TestCatalogRepository_PricePathsAgree(t *testing.T) {
	c := newCatalogFixture(t)
	ctx := context.Background()
	resolver := book.NewPriceResolver(c.fx.Discounts)

	days := []string{"2024-04-01", "2024-05-14", "2024-05-19", "2024-05-20", "2024-05-21", "2024-06-02"}
	books := []*book.Book{c.farm, c.nineteen, c.pride, c.emma}

	for _, day := range days {
		asOf := clock.MustDate(day)
		for _, b := range books {
			scalar, err := resolver.Resolve(ctx, b, asOf)
			require.NoError(t, err)

			row, err := c.repo.FindByID(ctx, b.ID, asOf)
			require.NoError(t, err)
			assert.Equal(t, scalar, row.CurrentPrice, "%s @ %s", b.Title, day)
		}
	}
}

func TestCatalogRepository_ListDiscounted(t *testing.T) {
	c := newCatalogFixture(t)
	ctx := context.Background()

	t.Run("只含当天有生效折扣的图书", func(t *testing.T) {
		list, total, err := c.repo.ListDiscounted(ctx, book.ListQuery{Limit: 10}, c.today)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, []string{"Animal Farm", "Pride and Prejudice"}, titles(list))
	})

	t.Run("最低评分4只保留高分图书", func(t *testing.T) {
		q := book.ListQuery{Limit: 10, Filter: book.Filter{MinStars: floatPtr(4)}}
		list, total, err := c.repo.ListDiscounted(ctx, q, c.today)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, []string{"Animal Farm"}, titles(list))
	})

	t.Run("当天没有任何折扣返回空页", func(t *testing.T) {
		list, total, err := c.repo.ListDiscounted(ctx, book.ListQuery{Limit: 10}, clock.MustDate("2023-01-01"))
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestCatalogRepository_Search(t *testing.T) {
	c := newCatalogFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		term      string
		wantTotal int64
		want      []string
	}{
		{"匹配作者名", "orwell", 2, []string{"Animal Farm", "1984"}},
		{"匹配书名", "farm", 1, []string{"Animal Farm"}},
		{"书名和作者名都可以", "e", 4, []string{"Animal Farm", "1984", "Pride and Prejudice", "Emma"}},
		{"没有匹配", "tolkien", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := c.repo.Search(ctx, tt.term, 0, 10, c.today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.want, titles(list))
		})
	}

	t.Run("总数是全部匹配数", func(t *testing.T) {
		list, total, err := c.repo.Search(ctx, "e", 1, 2, c.today)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Equal(t, []string{"1984", "Pride and Prejudice"}, titles(list))
	})
}

func TestCatalogRepository_Rankings(t *testing.T) {
	c := newCatalogFixture(t)
	ctx := context.Background()

	t.Run("推荐:平均分降序,不含无评论图书", func(t *testing.T) {
		list, err := c.repo.Recommended(ctx, 10, c.today)
		require.NoError(t, err)
		assert.Equal(t, []string{"1984", "Animal Farm", "Pride and Prejudice"}, rankedTitles(list))
		assert.InDelta(t, 4.6667, list[0].AvgRating, 0.001)
		assert.Equal(t, int64(3), list[0].ReviewCount)
		assert.Equal(t, int64(1000), list[1].CurrentPrice)
	})

	t.Run("推荐:平均分相同按标价升序", func(t *testing.T) {
		c.fx.Rate(c.emma, 5, 4) // 4.5,与Animal Farm相同,标价更低
		list, err := c.repo.Recommended(ctx, 3, c.today)
		require.NoError(t, err)
		assert.Equal(t, []string{"1984", "Emma", "Animal Farm"}, rankedTitles(list))
	})

	t.Run("热门:评论数降序,同数按标价升序", func(t *testing.T) {
		list, err := c.repo.Popular(ctx, 10, c.today)
		require.NoError(t, err)
		assert.Equal(t, []string{"1984", "Emma", "Animal Farm", "Pride and Prejudice"}, rankedTitles(list))
	})

	t.Run("折扣排行:只含有生效折扣的图书", func(t *testing.T) {
		list, err := c.repo.TopDiscounted(ctx, 10, c.today)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, []string{"Animal Farm", "Pride and Prejudice"}, rankedTitles(list))
		assert.Equal(t, int64(1000), list[0].DiscountAmount)
		assert.Equal(t, int64(500), list[1].DiscountAmount)
		assert.InDelta(t, 4.5, list[0].AvgRating, 0.001)
	})

	t.Run("limit截断", func(t *testing.T) {
		list, err := c.repo.TopDiscounted(ctx, 1, c.today)
		require.NoError(t, err)
		assert.Equal(t, []string{"Animal Farm"}, rankedTitles(list))
	})

	t.Run("当天没有折扣时折扣排行为空", func(t *testing.T) {
		list, err := c.repo.TopDiscounted(ctx, 10, clock.MustDate("2023-01-01"))
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
