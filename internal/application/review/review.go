package review

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// ReviewItem 书评DTO
type ReviewItem struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"book_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func toItem(r *review.Review) ReviewItem {
	return ReviewItem{
		ID:        r.ID,
		BookID:    r.BookID,
		Title:     r.Title,
		Body:      r.Body,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}

// PostReviewRequest 发表书评请求
type PostReviewRequest struct {
	BookID uint
	Title  string
	Body   string
	Rating int
}

// PostReviewUseCase 发表书评
// 成功后发布review.posted事件,发布失败只记日志
type PostReviewUseCase struct {
	reviewService review.Service
	books         book.Repository
	publisher     mq.EventPublisher
}

// NewPostReviewUseCase 创建用例
func NewPostReviewUseCase(reviewService review.Service, books book.Repository, publisher mq.EventPublisher) *PostReviewUseCase {
	return &PostReviewUseCase{
		reviewService: reviewService,
		books:         books,
		publisher:     publisher,
	}
}

// Execute 图书不存在返回ErrBookNotFound
func (uc *PostReviewUseCase) Execute(ctx context.Context, req PostReviewRequest) (*ReviewItem, error) {
	if req.BookID == 0 {
		return nil, review.ErrUnsetBook
	}
	ok, err := uc.books.Exists(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, book.ErrBookNotFound
	}

	r, err := uc.reviewService.Post(ctx, req.BookID, req.Title, req.Body, req.Rating)
	if err != nil {
		return nil, err
	}

	metrics.ObserveReviewPosted(strconv.Itoa(r.Rating))
	event := mq.ReviewPostedEvent{
		ReviewID: r.ID,
		BookID:   r.BookID,
		Rating:   r.Rating,
		PostedAt: r.CreatedAt,
	}
	if err := uc.publisher.Publish(ctx, mq.RoutingKeyReviewPosted, event); err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint("review_id", r.ID).Msg("发布review.posted事件失败")
	}

	item := toItem(r)
	return &item, nil
}

// ListReviewsRequest 书评列表请求
type ListReviewsRequest struct {
	BookID     uint
	Offset     int
	Limit      *int
	RatingStar *int // 只看某个星级
	IsDesc     bool // 按时间倒序
}

// ListReviewsResponse 书评列表 + 评分汇总
// 汇总统计全部书评,不受rating_star过滤影响
type ListReviewsResponse struct {
	BookID       uint                         `json:"book_id"`
	Reviews      *pagination.Page[ReviewItem] `json:"reviews"`
	AvgRating    float64                      `json:"avg_rating"`
	StarsCount   map[int]int64                `json:"stars_count"`
	TotalReviews int64                        `json:"total_reviews"`
}

// ListReviewsUseCase 图书书评列表
type ListReviewsUseCase struct {
	reviewService review.Service
	books         book.Repository
}

// NewListReviewsUseCase 创建用例
func NewListReviewsUseCase(reviewService review.Service, books book.Repository) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviewService: reviewService, books: books}
}

// Execute 执行查询
func (uc *ListReviewsUseCase) Execute(ctx context.Context, req ListReviewsRequest) (*ListReviewsResponse, error) {
	p, err := pagination.Resolve(req.Offset, req.Limit, pagination.DefaultLimit, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	if req.BookID != 0 {
		ok, err := uc.books.Exists(ctx, req.BookID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, book.ErrBookNotFound
		}
	}

	reviews := uc.reviewService.ForBook(req.BookID)
	list, total, err := reviews.List(ctx, review.ListQuery{
		Offset: p.Offset,
		Limit:  p.Limit,
		Rating: req.RatingStar,
		Desc:   req.IsDesc,
	})
	if err != nil {
		return nil, err
	}
	summary, err := reviews.Summary(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewItem, len(list))
	for i, r := range list {
		items[i] = toItem(r)
	}
	page, err := pagination.Paginate(total, items, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &ListReviewsResponse{
		BookID:       req.BookID,
		Reviews:      page,
		AvgRating:    summary.AvgRating,
		StarsCount:   summary.StarsCount,
		TotalReviews: summary.Total,
	}, nil
}
