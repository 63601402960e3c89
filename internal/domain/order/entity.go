package order

import (
	"time"
)

// Order 订单(聚合根)
// 订单创建后不再修改:没有状态流转,也没有取消
type Order struct {
	ID        uint
	OrderNo   string // 订单号(业务主键,全局唯一)
	UserID    uint
	OrderDate time.Time
	Total     int64 // 订单总金额(分),等于各明细单价×数量之和
	Items     []OrderItem
}

// OrderItem 订单明细
// Price是下单当天的售价快照,之后标价或折扣变化不影响历史订单
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    int64 // 下单时单价(分)
}

// Subtotal 明细小计
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewOrder 创建订单,总金额由明细计算
func NewOrder(orderNo string, userID uint, orderDate time.Time, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItems
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	o := &Order{
		OrderNo:   orderNo,
		UserID:    userID,
		OrderDate: orderDate,
		Items:     items,
	}
	o.Total = o.CalculateTotal()
	return o, nil
}

// CalculateTotal 计算订单总金额
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

// IsOwnedBy 订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
