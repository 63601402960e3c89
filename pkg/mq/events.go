package mq

import "time"

// 路由键
const (
	RoutingKeyOrderCreated = "order.created"
	RoutingKeyReviewPosted = "review.posted"
)

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderID   uint                    `json:"order_id"`
	OrderNo   string                  `json:"order_no"`
	UserID    uint                    `json:"user_id"`
	Total     int64                   `json:"total"` // 分
	Items     []OrderCreatedEventItem `json:"items"`
	CreatedAt time.Time               `json:"created_at"`
}

// OrderCreatedEventItem 订单事件明细
type OrderCreatedEventItem struct {
	BookID   uint  `json:"book_id"`
	Quantity int   `json:"quantity"`
	Price    int64 `json:"price"`
}

// ReviewPostedEvent 评论发表事件
type ReviewPostedEvent struct {
	ReviewID uint      `json:"review_id"`
	BookID   uint      `json:"book_id"`
	Rating   int       `json:"rating"`
	PostedAt time.Time `json:"posted_at"`
}
