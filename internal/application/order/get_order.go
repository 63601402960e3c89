package order

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/order"
	"github.com/xiebiao/bookcatalog/pkg/money"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// OrderResponse 订单DTO
type OrderResponse struct {
	ID        uint                `json:"id"`
	OrderNo   string              `json:"order_no"`
	UserID    uint                `json:"user_id"`
	OrderDate time.Time           `json:"order_date"`
	Total     int64               `json:"total"`
	TotalYuan string              `json:"total_yuan"`
	Items     []OrderItemResponse `json:"items"`
}

// OrderItemResponse 订单明细DTO
type OrderItemResponse struct {
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // 下单时单价(分)
	PriceYuan string `json:"price_yuan"`
	Subtotal  int64  `json:"subtotal"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:        o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		OrderDate: o.OrderDate,
		Total:     o.Total,
		TotalYuan: money.FormatYuan(o.Total),
		Items:     make([]OrderItemResponse, len(o.Items)),
	}
	for i, item := range o.Items {
		resp.Items[i] = OrderItemResponse{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			PriceYuan: money.FormatYuan(item.Price),
			Subtotal:  item.Subtotal(),
		}
	}
	return resp
}

// GetOrderRequest 订单详情请求
type GetOrderRequest struct {
	OrderID uint
	UserID  uint // 当前用户
	IsAdmin bool
}

// GetOrderUseCase 订单详情
// 只有下单用户和管理员能查看;别人的订单按不存在处理,不暴露订单ID是否有效
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// Execute 执行查询
func (uc *GetOrderUseCase) Execute(ctx context.Context, req GetOrderRequest) (*OrderResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !req.IsAdmin && !o.IsOwnedBy(req.UserID) {
		return nil, order.ErrOrderNotFound
	}
	return toOrderResponse(o), nil
}

// ListMyOrdersRequest 我的订单请求
type ListMyOrdersRequest struct {
	UserID uint
	Offset int
	Limit  *int
}

// ListMyOrdersUseCase 我的订单,按下单时间倒序
type ListMyOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListMyOrdersUseCase 创建用例
func NewListMyOrdersUseCase(orderRepo order.Repository) *ListMyOrdersUseCase {
	return &ListMyOrdersUseCase{orderRepo: orderRepo}
}

// Execute 执行查询
func (uc *ListMyOrdersUseCase) Execute(ctx context.Context, req ListMyOrdersRequest) (*pagination.Page[*OrderResponse], error) {
	p, err := pagination.Resolve(req.Offset, req.Limit, pagination.DefaultLimit, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.orderRepo.ListByUserID(ctx, req.UserID, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*OrderResponse, len(list))
	for i, o := range list {
		items[i] = toOrderResponse(o)
	}
	return pagination.Paginate(total, items, p.Offset, p.Limit)
}
