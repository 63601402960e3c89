package review_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []interface{}
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, message)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func intPtr(v int) *int { return &v }

func TestPostReviewUseCase(t *testing.T) {
	fx := dbtest.NewFixture(t, dbtest.Open(t))
	ctx := context.Background()
	farm := fx.Book("Animal Farm", fx.Author("George Orwell"), fx.Category("Fiction"), 2000)

	pub := &recordingPublisher{}
	uc := appreview.NewPostReviewUseCase(review.NewService(fx.Reviews), fx.Books, pub)

	t.Run("发表并发布事件", func(t *testing.T) {
		got, err := uc.Execute(ctx, appreview.PostReviewRequest{BookID: farm.ID, Title: "Great", Body: "Loved it", Rating: 5})
		require.NoError(t, err)
		assert.NotZero(t, got.ID)

		require.Len(t, pub.keys, 1)
		assert.Equal(t, mq.RoutingKeyReviewPosted, pub.keys[0])
		event, ok := pub.events[0].(mq.ReviewPostedEvent)
		require.True(t, ok)
		assert.Equal(t, got.ID, event.ReviewID)
		assert.Equal(t, 5, event.Rating)
	})

	t.Run("发布失败不影响发表", func(t *testing.T) {
		pub.err = errors.New("broker down")
		defer func() { pub.err = nil }()

		_, err := uc.Execute(ctx, appreview.PostReviewRequest{BookID: farm.ID, Title: "Ok", Rating: 3})
		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		req     appreview.PostReviewRequest
		wantErr error
	}{
		{"未指定图书", appreview.PostReviewRequest{Title: "x", Rating: 3}, review.ErrUnsetBook},
		{"图书不存在", appreview.PostReviewRequest{BookID: 999, Title: "x", Rating: 3}, book.ErrBookNotFound},
		{"评分为0", appreview.PostReviewRequest{BookID: farm.ID, Title: "x", Rating: 0}, review.ErrInvalidRating},
		{"评分为6", appreview.PostReviewRequest{BookID: farm.ID, Title: "x", Rating: 6}, review.ErrInvalidRating},
		{"标题为空", appreview.PostReviewRequest{BookID: farm.ID, Title: " ", Rating: 3}, review.ErrEmptyTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListReviewsUseCase(t *testing.T) {
	fx := dbtest.NewFixture(t, dbtest.Open(t))
	ctx := context.Background()
	farm := fx.Book("Animal Farm", fx.Author("George Orwell"), fx.Category("Fiction"), 2000)
	emma := fx.Book("Emma", fx.Author("Jane Austen"), fx.Category("Classic"), 1800)
	fx.Rate(farm, 5, 4, 4, 1)

	uc := appreview.NewListReviewsUseCase(review.NewService(fx.Reviews), fx.Books)

	t.Run("汇总", func(t *testing.T) {
		resp, err := uc.Execute(ctx, appreview.ListReviewsRequest{BookID: farm.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.TotalReviews)
		assert.Equal(t, 3.5, resp.AvgRating)
		assert.Equal(t, map[int]int64{1: 1, 2: 0, 3: 0, 4: 2, 5: 1}, resp.StarsCount)
		assert.Equal(t, int64(4), resp.Reviews.Total)
		assert.Len(t, resp.Reviews.Data, 4)
	})

	t.Run("按星级过滤不影响汇总", func(t *testing.T) {
		resp, err := uc.Execute(ctx, appreview.ListReviewsRequest{BookID: farm.ID, RatingStar: intPtr(4), Limit: intPtr(1)})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Reviews.Total)
		require.Len(t, resp.Reviews.Data, 1)
		assert.Equal(t, 4, resp.Reviews.Data[0].Rating)
		assert.Equal(t, int64(4), resp.TotalReviews)
	})

	t.Run("没有书评", func(t *testing.T) {
		resp, err := uc.Execute(ctx, appreview.ListReviewsRequest{BookID: emma.ID})
		require.NoError(t, err)
		assert.Zero(t, resp.AvgRating)
		assert.Zero(t, resp.TotalReviews)
		assert.Empty(t, resp.Reviews.Data)
	})

	t.Run("未指定图书", func(t *testing.T) {
		_, err := uc.Execute(ctx, appreview.ListReviewsRequest{})
		assert.ErrorIs(t, err, review.ErrUnsetBook)
	})

	t.Run("星级越界", func(t *testing.T) {
		_, err := uc.Execute(ctx, appreview.ListReviewsRequest{BookID: farm.ID, RatingStar: intPtr(7)})
		assert.ErrorIs(t, err, review.ErrInvalidRating)
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := uc.Execute(ctx, appreview.ListReviewsRequest{BookID: 999})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}
