package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:    rv.BookID,
		Title:     rv.Title,
		Body:      rv.Body,
		Rating:    rv.Rating,
		CreatedAt: rv.CreatedAt,
	}
	if err := getDB(ctx, r.db).Omit("Book").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "发表书评失败")
	}
	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	return nil
}

// ListByBook 书评列表
// 时间相同按ID排序,保证分页稳定
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint, q review.ListQuery) ([]*review.Review, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("book_id = ?", bookID)
		if q.Rating != nil {
			db = db.Where("rating = ?", *q.Rating)
		}
		return db
	}

	var total int64
	if err := getDB(ctx, r.db).Model(&ReviewModel{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评总数失败")
	}

	order := "created_at ASC, id ASC"
	if q.Desc {
		order = "created_at DESC, id DESC"
	}

	var models []ReviewModel
	err := getDB(ctx, r.db).
		Scopes(filter, pageScope(q.Offset, q.Limit)).
		Order(order).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评列表失败")
	}

	list := make([]*review.Review, len(models))
	for i, m := range models {
		list[i] = &review.Review{
			ID:        m.ID,
			BookID:    m.BookID,
			Title:     m.Title,
			Body:      m.Body,
			Rating:    m.Rating,
			CreatedAt: m.CreatedAt,
		}
	}
	return list, total, nil
}

// CountByRating 各星级数量(GROUP BY rating)
func (r *reviewRepository) CountByRating(ctx context.Context, bookID uint) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := getDB(ctx, r.db).
		Model(&ReviewModel{}).
		Select("rating, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计书评评分失败")
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}
