package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 排行榜
// 三个榜单的次序都是:主排序键 → 标价升序 → 图书ID升序

// rankedRow 排行榜结果行
type rankedRow struct {
	Book           catalogRow `gorm:"embedded"`
	AvgRating      float64
	ReviewCount    int64
	DiscountAmount int64
}

// Recommended 平均评分降序
// 评分统计内连接,没有评论的图书不会出现
func (r *catalogRepository) Recommended(ctx context.Context, limit int, asOf time.Time) ([]*book.RankedBook, error) {
	db := getDB(ctx, r.db)
	query := catalogFrom(db, asOf, leftJoin).
		Joins("JOIN (?) AS r ON r.book_id = b.id", ratingSubquery(db)).
		Select(catalogColumns + ", r.avg_rating, r.review_count").
		Order("r.avg_rating DESC, b.price ASC, b.id ASC")
	return r.rank(query, limit, "查询推荐图书失败")
}

// Popular 评论数降序
func (r *catalogRepository) Popular(ctx context.Context, limit int, asOf time.Time) ([]*book.RankedBook, error) {
	db := getDB(ctx, r.db)
	query := catalogFrom(db, asOf, leftJoin).
		Joins("JOIN (?) AS r ON r.book_id = b.id", ratingSubquery(db)).
		Select(catalogColumns + ", r.avg_rating, r.review_count").
		Order("r.review_count DESC, b.price ASC, b.id ASC")
	return r.rank(query, limit, "查询热门图书失败")
}

// TopDiscounted 折扣金额(标价 - 最低生效折扣价)降序
// 折扣子查询内连接,当天没有生效折扣的图书不会出现
func (r *catalogRepository) TopDiscounted(ctx context.Context, limit int, asOf time.Time) ([]*book.RankedBook, error) {
	db := getDB(ctx, r.db)
	query := catalogFrom(db, asOf, innerJoin).
		Joins("LEFT JOIN (?) AS r ON r.book_id = b.id", ratingSubquery(db)).
		Select(catalogColumns + ", " +
			"COALESCE(r.avg_rating, 0) AS avg_rating, " +
			"COALESCE(r.review_count, 0) AS review_count, " +
			"(b.price - d.min_price) AS discount_amount").
		Order("(b.price - d.min_price) DESC, b.price ASC, b.id ASC")
	return r.rank(query, limit, "查询折扣排行失败")
}

func (r *catalogRepository) rank(query *gorm.DB, limit int, msg string) ([]*book.RankedBook, error) {
	var rows []rankedRow
	if err := query.Limit(limit).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, msg)
	}

	list := make([]*book.RankedBook, len(rows))
	for i := range rows {
		list[i] = &book.RankedBook{
			CatalogBook:    *rows[i].Book.toEntity(),
			AvgRating:      rows[i].AvgRating,
			ReviewCount:    rows[i].ReviewCount,
			DiscountAmount: rows[i].DiscountAmount,
		}
	}
	return list, nil
}
