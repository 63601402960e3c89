package mq

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
)

// BreakerPublisher 带熔断的发布者
// RabbitMQ不可用时连续失败若干次后直接返回ErrOpenState，
// 下单、发表评论不必每次都等待发布超时
type BreakerPublisher struct {
	next    EventPublisher
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerPublisher 连续failures次发布失败后熔断，timeout后半开探测
func NewBreakerPublisher(next EventPublisher, failures int, timeout time.Duration) *BreakerPublisher {
	threshold := uint32(failures)
	if failures <= 0 {
		threshold = 5
	}
	cb := circuitbreaker.New("mq-publisher", circuitbreaker.Config{
		Timeout: timeout,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("熔断器状态变化")
		},
	})
	return &BreakerPublisher{next: next, breaker: cb}
}

// Publish 实现EventPublisher
func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	return p.breaker.Execute(func() error {
		return p.next.Publish(ctx, routingKey, message)
	})
}

// Close 实现EventPublisher
func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}

// State 熔断器当前状态
func (p *BreakerPublisher) State() circuitbreaker.State {
	return p.breaker.State()
}
