package order

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/order"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "order"

// CreateOrderUseCase 创建订单用例
// 每本书按下单当天的售价定价,单价快照和总金额在同一个事务里写入:
//  1. 查询当天售价(与目录查询同一个最低折扣价子查询)
//  2. 插入订单拿到ID
//  3. 插入明细
//  4. COMMIT
//
// 提交后再发布order.created事件,发布失败不影响下单
type CreateOrderUseCase struct {
	orderRepo order.Repository
	catalog   book.CatalogRepository
	txManager *mysql.TxManager
	publisher mq.EventPublisher
	clock     clock.Clock
	now       func() time.Time
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	catalog book.CatalogRepository,
	txManager *mysql.TxManager,
	publisher mq.EventPublisher,
	clk clock.Clock,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		catalog:   catalog,
		txManager: txManager,
		publisher: publisher,
		clock:     clk,
		now:       time.Now,
	}
}

// CreateOrderRequest 下单请求DTO
type CreateOrderRequest struct {
	UserID uint              // 买家用户ID(从JWT中提取)
	Items  []CreateOrderItem // 订单明细
}

// CreateOrderItem 订单明细项
type CreateOrderItem struct {
	BookID   uint
	Quantity int
}

// Execute 执行下单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (resp *OrderResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "create_order")
	var total int64
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOrderCreation(start, total, err)
	}()

	ids, err := bookIDs(req.Items)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 使用数据库里的当天售价,不信任客户端传来的价格
		prices, err := uc.catalog.CurrentPrices(txCtx, ids, uc.clock.Today())
		if err != nil {
			return err
		}

		items := make([]order.OrderItem, len(req.Items))
		for i, item := range req.Items {
			price, ok := prices[item.BookID]
			if !ok {
				return book.ErrBookNotFound
			}
			items[i] = order.OrderItem{
				BookID:   item.BookID,
				Quantity: item.Quantity,
				Price:    price,
			}
		}

		now := uc.now()
		o, err := order.NewOrder(order.GenerateOrderNo(now), req.UserID, now, items)
		if err != nil {
			return err
		}
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	total = created.Total

	log.Ctx(ctx).Info().
		Uint("order_id", created.ID).
		Str("order_no", created.OrderNo).
		Uint("user_id", created.UserID).
		Int64("total", created.Total).
		Msg("订单已创建")

	uc.publishCreated(ctx, created)
	return toOrderResponse(created), nil
}

func (uc *CreateOrderUseCase) publishCreated(ctx context.Context, o *order.Order) {
	event := mq.OrderCreatedEvent{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Total:     o.Total,
		Items:     make([]mq.OrderCreatedEventItem, len(o.Items)),
		CreatedAt: o.OrderDate,
	}
	for i, item := range o.Items {
		event.Items[i] = mq.OrderCreatedEventItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	if err := uc.publisher.Publish(ctx, mq.RoutingKeyOrderCreated, event); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("order_no", o.OrderNo).Msg("发布order.created事件失败")
	}
}

// bookIDs 校验明细并取出图书ID
// 同一本书出现多次时返回ErrDuplicateBook
func bookIDs(items []CreateOrderItem) ([]uint, error) {
	if len(items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}

	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}
		if _, dup := seen[item.BookID]; dup {
			return nil, order.ErrDuplicateBook
		}
		seen[item.BookID] = struct{}{}
		ids = append(ids, item.BookID)
	}
	return ids, nil
}
