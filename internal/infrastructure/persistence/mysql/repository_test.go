package mysql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/discount"
	"github.com/xiebiao/bookcatalog/internal/domain/order"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestAuthorRepository(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := fx.Authors
	ctx := context.Background()

	orwell := fx.Author("George Orwell")
	austen := fx.Author("Jane Austen")

	t.Run("重名返回冲突", func(t *testing.T) {
		dup, err := author.NewAuthor("George Orwell", "")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), author.ErrAuthorDuplicate)
	})

	t.Run("改名成已有名字返回冲突", func(t *testing.T) {
		a, err := repo.FindByID(ctx, austen.ID)
		require.NoError(t, err)
		require.NoError(t, a.Rename("George Orwell"))
		assert.ErrorIs(t, repo.Update(ctx, a), author.ErrAuthorDuplicate)
	})

	t.Run("分页列表", func(t *testing.T) {
		list, total, err := repo.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, list, 1)
		assert.Equal(t, "Jane Austen", list[0].Name)
	})

	t.Run("还有图书时不能删除", func(t *testing.T) {
		fx.Book("1984", orwell, fx.Category("Classic"), 3500)
		assert.ErrorIs(t, repo.Delete(ctx, orwell.ID), author.ErrAuthorInUse)
	})

	t.Run("删除与不存在", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, austen.ID))
		assert.ErrorIs(t, repo.Delete(ctx, austen.ID), author.ErrAuthorNotFound)

		_, err := repo.FindByID(ctx, austen.ID)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)

		ok, err := repo.Exists(ctx, austen.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCategoryRepository(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := fx.Categories
	ctx := context.Background()

	fiction := fx.Category("Fiction")

	dup, err := category.NewCategory("Fiction", "duplicate")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), category.ErrCategoryDuplicate)

	got, err := repo.FindByID(ctx, fiction.ID)
	require.NoError(t, err)
	got.Description = "小说"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.FindByID(ctx, fiction.ID)
	require.NoError(t, err)
	assert.Equal(t, "小说", got.Description)

	missing := &category.Category{ID: 999, Name: "None"}
	assert.ErrorIs(t, repo.Update(ctx, missing), category.ErrCategoryNotFound)
}

func TestBookRepository(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := fx.Books
	ctx := context.Background()

	b := fx.Book("Animal Farm", fx.Author("George Orwell"), fx.Category("Fiction"), 2000)
	fx.Discount(b, "2024-05-01", "2024-05-31", 1000)
	fx.Rate(b, 5)

	t.Run("更新标价", func(t *testing.T) {
		require.NoError(t, b.UpdatePrice(2500))
		require.NoError(t, repo.Update(ctx, b))

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), got.Price)
	})

	t.Run("删除图书同时删除折扣和书评", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, b.ID))

		_, err := repo.FindByID(ctx, b.ID)
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		ds, err := fx.Discounts.ListByBook(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, ds)

		counts, err := fx.Reviews.CountByRating(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, counts)
	})

	t.Run("删除不存在的图书", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 999), book.ErrBookNotFound)
	})
}

func TestDiscountRepository(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := fx.Discounts
	ctx := context.Background()

	b := fx.Book("Animal Farm", fx.Author("George Orwell"), fx.Category("Fiction"), 2000)
	late := fx.Discount(b, "2024-06-01", "2024-06-30", 1200)
	early := fx.Discount(b, "2024-05-01", "2024-05-31", 1500)

	t.Run("日期原样读回", func(t *testing.T) {
		got, err := repo.FindByID(ctx, early.ID)
		require.NoError(t, err)
		assert.True(t, clock.MustDate("2024-05-01").Equal(got.StartDate))
		assert.True(t, clock.MustDate("2024-05-31").Equal(got.EndDate))
	})

	t.Run("按开始日期排序", func(t *testing.T) {
		list, err := repo.ListByBook(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, early.ID, list[0].ID)
		assert.Equal(t, late.ID, list[1].ID)
	})

	t.Run("生效折扣", func(t *testing.T) {
		list, err := repo.ListActive(ctx, b.ID, clock.MustDate("2024-05-31"))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, early.ID, list[0].ID)

		list, err = repo.ListActive(ctx, b.ID, clock.MustDate("2024-07-01"))
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("修改时间段", func(t *testing.T) {
		require.NoError(t, late.Reschedule(clock.MustDate("2024-05-30"), clock.MustDate("2024-06-30"), 900))
		require.NoError(t, repo.Update(ctx, late))

		list, err := repo.ListActive(ctx, b.ID, clock.MustDate("2024-05-31"))
		require.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, int64(900), list[0].Price, "按价格升序")
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, late.ID))
		assert.ErrorIs(t, repo.Delete(ctx, late.ID), discount.ErrDiscountNotFound)
	})
}

func TestReviewRepository(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := fx.Reviews
	ctx := context.Background()

	b := fx.Book("1984", fx.Author("George Orwell"), fx.Category("Classic"), 3500)
	other := fx.Book("Emma", fx.Author("Jane Austen"), fx.Category("Fiction"), 1800)
	fx.Rate(b, 5, 4, 4, 1)
	fx.Rate(other, 2)

	t.Run("按星级计数", func(t *testing.T) {
		counts, err := repo.CountByRating(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, map[int]int64{5: 1, 4: 2, 1: 1}, counts)
	})

	t.Run("按星级过滤", func(t *testing.T) {
		four := 4
		list, total, err := repo.ListByBook(ctx, b.ID, review.ListQuery{Limit: 10, Rating: &four})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 2)
	})

	t.Run("倒序分页", func(t *testing.T) {
		asc, _, err := repo.ListByBook(ctx, b.ID, review.ListQuery{Limit: 10})
		require.NoError(t, err)
		desc, total, err := repo.ListByBook(ctx, b.ID, review.ListQuery{Limit: 1, Desc: true})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, desc, 1)
		assert.Equal(t, asc[len(asc)-1].ID, desc[0].ID)
	})
}

func TestUserRepository(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := fx.Users
	ctx := context.Background()

	alice := fx.User("alice@example.com", "hash", false)
	fx.User("bob@example.com", "hash", true)

	t.Run("邮箱重复", func(t *testing.T) {
		dup := *alice
		dup.ID = 0
		assert.ErrorIs(t, repo.Create(ctx, &dup), apperrors.ErrEmailDuplicate)
	})

	t.Run("按邮箱查找", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.False(t, got.IsAdmin)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("改成别人的邮箱", func(t *testing.T) {
		alice.UpdateProfile("", "", "bob@example.com")
		assert.ErrorIs(t, repo.Update(ctx, alice), apperrors.ErrEmailDuplicate)
	})

	t.Run("列表", func(t *testing.T) {
		list, total, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 2)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, alice.ID))
		assert.ErrorIs(t, repo.Delete(ctx, alice.ID), apperrors.ErrUserNotFound)
	})
}

func TestOrderRepository_Transaction(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	repo := mysql.NewOrderRepository(db)
	txm := mysql.NewTxManager(db)
	ctx := context.Background()

	b := fx.Book("1984", fx.Author("George Orwell"), fx.Category("Classic"), 3500)
	buyer := fx.User("buyer@example.com", "hash", false)

	newOrder := func(t *testing.T) *order.Order {
		o, err := order.NewOrder(order.GenerateOrderNo(time.Now()), buyer.ID, time.Now(), []order.OrderItem{
			{BookID: b.ID, Quantity: 2, Price: 3500},
		})
		require.NoError(t, err)
		return o
	}

	t.Run("提交后订单和明细都可见", func(t *testing.T) {
		o := newOrder(t)
		err := txm.Transaction(ctx, func(ctx context.Context) error {
			return repo.Create(ctx, o)
		})
		require.NoError(t, err)
		require.NotZero(t, o.ID)
		assert.Equal(t, o.ID, o.Items[0].OrderID)

		got, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7000), got.Total)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Quantity)
	})

	t.Run("回滚后什么都不留下", func(t *testing.T) {
		o := newOrder(t)
		boom := errors.New("boom")
		err := txm.Transaction(ctx, func(ctx context.Context) error {
			if err := repo.Create(ctx, o); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = repo.FindByID(ctx, o.ID)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("用户订单列表", func(t *testing.T) {
		list, total, err := repo.ListByUserID(ctx, buyer.ID, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Len(t, list[0].Items, 1)

		_, total, err = repo.ListByUserID(ctx, buyer.ID+1, 0, 10)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}
