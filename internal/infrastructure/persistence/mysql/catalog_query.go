package mysql

import (
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// 目录查询的SQL片段
//
// 售价计算只有这一种SQL写法:
//
//	LEFT JOIN (SELECT book_id, MIN(price) AS min_price FROM discounts
//	           WHERE start_date <= :today AND end_date >= :today
//	           GROUP BY book_id) AS d ON d.book_id = b.id
//	COALESCE(d.min_price, b.price) AS current_price
//
// 所有列表、搜索、详情、排行榜、下单取价都复用它,
// 与domain/book.CurrentPrice的逐本计算结果一致(整数分,MIN没有精度问题)

const (
	// currentPriceExpr 当天售价
	currentPriceExpr = "COALESCE(d.min_price, b.price)"

	// catalogColumns 目录视图的列,名字与catalogRow字段一一对应
	catalogColumns = "b.id, b.title, b.summary, b.cover_photo, " +
		"b.category_id, c.name AS category_name, " +
		"b.author_id, a.name AS author_name, " +
		"b.price AS list_price, " + currentPriceExpr + " AS current_price"

	leftJoin  = "LEFT JOIN"
	innerJoin = "JOIN"
)

// catalogRow 目录查询结果行
type catalogRow struct {
	ID           uint
	Title        string
	Summary      string
	CoverPhoto   string
	CategoryID   uint
	CategoryName string
	AuthorID     uint
	AuthorName   string
	ListPrice    int64
	CurrentPrice int64
}

func (r *catalogRow) toEntity() *book.CatalogBook {
	return &book.CatalogBook{
		ID:           r.ID,
		Title:        r.Title,
		Summary:      r.Summary,
		CoverPhoto:   r.CoverPhoto,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		AuthorID:     r.AuthorID,
		AuthorName:   r.AuthorName,
		ListPrice:    r.ListPrice,
		CurrentPrice: r.CurrentPrice,
	}
}

func toCatalogBooks(rows []catalogRow) []*book.CatalogBook {
	list := make([]*book.CatalogBook, len(rows))
	for i := range rows {
		list[i] = rows[i].toEntity()
	}
	return list
}

// activeOn 折扣在asOf当天生效(闭区间)
func activeOn(asOf time.Time) func(*gorm.DB) *gorm.DB {
	day := dateArg(asOf)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date <= ? AND end_date >= ?", day, day)
	}
}

// newQuery 在同一个连接(或事务)上开一条新语句
func newQuery(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}

// activeDiscountSubquery 每本书当天最低生效折扣价
func activeDiscountSubquery(db *gorm.DB, asOf time.Time) *gorm.DB {
	return newQuery(db).
		Table("discounts").
		Select("book_id, MIN(price) AS min_price").
		Scopes(activeOn(asOf)).
		Group("book_id")
}

// ratingSubquery 每本书的平均评分和评论数(只含有评论的图书)
func ratingSubquery(db *gorm.DB) *gorm.DB {
	return newQuery(db).
		Table("reviews").
		Select("book_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count").
		Group("book_id")
}

// catalogFrom 图书 × 作者 × 分类 × 当天折扣
// discountJoin为LEFT JOIN时没有折扣的图书按标价出现;为JOIN时只保留有生效折扣的图书
func catalogFrom(db *gorm.DB, asOf time.Time, discountJoin string) *gorm.DB {
	return newQuery(db).
		Table("books AS b").
		Joins("JOIN authors AS a ON a.id = b.author_id").
		Joins("JOIN categories AS c ON c.id = b.category_id").
		Joins(discountJoin+" (?) AS d ON d.book_id = b.id", activeDiscountSubquery(db, asOf))
}
