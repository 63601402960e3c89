// Package dbtest 测试用数据库：SQLite内存库 + 生产环境同一套AutoMigrate模型
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/discount"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/clock"
)

// Open 打开一个独立的内存数据库并迁移表结构
// 内存库绑定在连接上，所以连接池只保留一个连接
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), mysql.NewGormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

// Fixture 造数据的辅助方法，失败直接终止测试
type Fixture struct {
	t   testing.TB
	ctx context.Context

	Authors    author.Repository
	Categories category.Repository
	Books      book.Repository
	Discounts  discount.Repository
	Reviews    review.Repository
	Users      user.Repository
}

// NewFixture 基于db创建Fixture
func NewFixture(t testing.TB, db *gorm.DB) *Fixture {
	return &Fixture{
		t:          t,
		ctx:        context.Background(),
		Authors:    mysql.NewAuthorRepository(db),
		Categories: mysql.NewCategoryRepository(db),
		Books:      mysql.NewBookRepository(db),
		Discounts:  mysql.NewDiscountRepository(db),
		Reviews:    mysql.NewReviewRepository(db),
		Users:      mysql.NewUserRepository(db),
	}
}

// Author 创建作者
func (f *Fixture) Author(name string) *author.Author {
	f.t.Helper()
	a, err := author.NewAuthor(name, "")
	require.NoError(f.t, err)
	require.NoError(f.t, f.Authors.Create(f.ctx, a))
	return a
}

// Category 创建分类
func (f *Fixture) Category(name string) *category.Category {
	f.t.Helper()
	c, err := category.NewCategory(name, "")
	require.NoError(f.t, err)
	require.NoError(f.t, f.Categories.Create(f.ctx, c))
	return c
}

// Book 创建图书，price单位为分
func (f *Fixture) Book(title string, a *author.Author, c *category.Category, price int64) *book.Book {
	f.t.Helper()
	b, err := book.NewBook(c.ID, a.ID, title, "", price, "")
	require.NoError(f.t, err)
	require.NoError(f.t, f.Books.Create(f.ctx, b))
	return b
}

// Discount 创建折扣，日期格式YYYY-MM-DD
func (f *Fixture) Discount(b *book.Book, start, end string, price int64) *discount.Discount {
	f.t.Helper()
	d, err := discount.New(b.ID, clock.MustDate(start), clock.MustDate(end), price)
	require.NoError(f.t, err)
	require.NoError(f.t, f.Discounts.Create(f.ctx, d))
	return d
}

// Rate 给图书添加若干条评分
func (f *Fixture) Rate(b *book.Book, ratings ...int) {
	f.t.Helper()
	for _, rating := range ratings {
		r, err := review.NewReview(b.ID, "书评", "", rating)
		require.NoError(f.t, err)
		require.NoError(f.t, f.Reviews.Create(f.ctx, r))
	}
}

// User 直接写入用户（密码哈希由调用方提供）
func (f *Fixture) User(email, hashedPassword string, isAdmin bool) *user.User {
	f.t.Helper()
	u := user.NewUser("Test", "User", email, hashedPassword, isAdmin)
	require.NoError(f.t, f.Users.Create(f.ctx, u))
	return u
}
