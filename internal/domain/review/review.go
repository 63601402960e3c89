package review

import (
	"context"
	"math"
	"strings"
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 评分范围
const (
	MinRating = 1
	MaxRating = 5
)

// Review 书评
type Review struct {
	ID        uint
	BookID    uint
	Title     string
	Body      string
	Rating    int // 1-5星
	CreatedAt time.Time
}

// NewReview 创建书评
func NewReview(bookID uint, title, body string, rating int) (*Review, error) {
	if bookID == 0 {
		return nil, ErrUnsetBook
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return &Review{
		BookID:    bookID,
		Title:     title,
		Body:      body,
		Rating:    rating,
		CreatedAt: time.Now(),
	}, nil
}

// RatingSummary 图书评分汇总
type RatingSummary struct {
	BookID     uint
	AvgRating  float64       // 保留两位小数,无评论为0
	StarsCount map[int]int64 // 1-5星各自的数量,没有的星级为0
	Total      int64
}

// NewRatingSummary 按星级分组计数计算加权平均分
func NewRatingSummary(bookID uint, counts map[int]int64) *RatingSummary {
	s := &RatingSummary{
		BookID:     bookID,
		StarsCount: make(map[int]int64, MaxRating),
	}

	var weighted int64
	for star := MinRating; star <= MaxRating; star++ {
		n := counts[star]
		s.StarsCount[star] = n
		s.Total += n
		weighted += int64(star) * n
	}
	if s.Total > 0 {
		s.AvgRating = math.Round(float64(weighted)/float64(s.Total)*100) / 100
	}
	return s
}

// ListQuery 书评列表参数
type ListQuery struct {
	Offset int
	Limit  int
	Rating *int // 只看某个星级
	Desc   bool // 按时间倒序
}

var (
	// ErrUnsetBook 没有先绑定图书就操作书评
	ErrUnsetBook = apperrors.New(apperrors.ErrCodeUnsetContext, "未指定图书")

	// ErrInvalidRating 评分越界
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5之间")

	// ErrEmptyTitle 标题为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书评标题不能为空")
)

// Repository 书评仓储接口
type Repository interface {
	Create(ctx context.Context, r *Review) error

	// ListByBook 图书的书评(可按星级过滤),返回分页前总数
	ListByBook(ctx context.Context, bookID uint, q ListQuery) ([]*Review, int64, error)

	// CountByRating 图书各星级的书评数量
	CountByRating(ctx context.Context, bookID uint) (map[int]int64, error)
}
