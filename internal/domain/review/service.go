package review

import (
	"context"
)

// Service 书评领域服务
// 书评的查询都要先用ForBook绑定图书,未绑定时返回ErrUnsetBook
type Service interface {
	// Post 发表书评
	Post(ctx context.Context, bookID uint, title, body string, rating int) (*Review, error)

	// ForBook 绑定图书,返回该图书的书评视图
	ForBook(bookID uint) *BookReviews
}

type service struct {
	repo Repository
}

// NewService 创建书评服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Post 发表书评
func (s *service) Post(ctx context.Context, bookID uint, title, body string, rating int) (*Review, error) {
	r, err := NewReview(bookID, title, body, rating)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ForBook 绑定图书
func (s *service) ForBook(bookID uint) *BookReviews {
	return &BookReviews{repo: s.repo, bookID: bookID}
}

// BookReviews 绑定了图书的书评视图
type BookReviews struct {
	repo   Repository
	bookID uint
}

// BookID 绑定的图书ID
func (b *BookReviews) BookID() uint {
	if b == nil {
		return 0
	}
	return b.bookID
}

// List 书评列表
func (b *BookReviews) List(ctx context.Context, q ListQuery) ([]*Review, int64, error) {
	if b.BookID() == 0 {
		return nil, 0, ErrUnsetBook
	}
	if q.Rating != nil && (*q.Rating < MinRating || *q.Rating > MaxRating) {
		return nil, 0, ErrInvalidRating
	}
	return b.repo.ListByBook(ctx, b.bookID, q)
}

// Summary 评分汇总
func (b *BookReviews) Summary(ctx context.Context) (*RatingSummary, error) {
	if b.BookID() == 0 {
		return nil, ErrUnsetBook
	}
	counts, err := b.repo.CountByRating(ctx, b.bookID)
	if err != nil {
		return nil, err
	}
	return NewRatingSummary(b.bookID, counts), nil
}
