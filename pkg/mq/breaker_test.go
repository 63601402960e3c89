package mq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
)

type flakyPublisher struct {
	err    error
	calls  int
	closed bool
}

func (f *flakyPublisher) Publish(context.Context, string, interface{}) error {
	f.calls++
	return f.err
}

func (f *flakyPublisher) Close() error {
	f.closed = true
	return nil
}

func TestBreakerPublisher(t *testing.T) {
	ctx := context.Background()
	next := &flakyPublisher{err: errors.New("connection refused")}
	p := NewBreakerPublisher(next, 2, time.Minute)

	var _ EventPublisher = p

	assert.Error(t, p.Publish(ctx, RoutingKeyReviewPosted, ReviewPostedEvent{ReviewID: 1}))
	assert.Error(t, p.Publish(ctx, RoutingKeyReviewPosted, ReviewPostedEvent{ReviewID: 2}))
	assert.Equal(t, circuitbreaker.StateOpen, p.State())

	err := p.Publish(ctx, RoutingKeyReviewPosted, ReviewPostedEvent{ReviewID: 3})
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.Equal(t, 2, next.calls, "熔断后不再调用RabbitMQ")

	assert.NoError(t, p.Close())
	assert.True(t, next.closed)
}

func TestBreakerPublisher_Success(t *testing.T) {
	next := &flakyPublisher{}
	p := NewBreakerPublisher(next, 0, time.Minute)
	for i := 0; i < 10; i++ {
		assert.NoError(t, p.Publish(context.Background(), RoutingKeyOrderCreated, OrderCreatedEvent{OrderID: uint(i)}))
	}
	assert.Equal(t, circuitbreaker.StateClosed, p.State())
	assert.Equal(t, 10, next.calls)
}
