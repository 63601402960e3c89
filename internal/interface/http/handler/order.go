package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookcatalog/internal/application/order"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// OrderHandler 订单HTTP处理器(都需要登录)
type OrderHandler struct {
	createOrderUseCase *apporder.CreateOrderUseCase
	getOrderUseCase    *apporder.GetOrderUseCase
	listOrdersUseCase  *apporder.ListMyOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	listOrdersUseCase *apporder.ListMyOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase: createOrderUseCase,
		getOrderUseCase:    getOrderUseCase,
		listOrdersUseCase:  listOrdersUseCase,
	}
}

// CreateOrder 创建订单
// @Summary      创建订单
// @Description  每本书按今天的售价(有折扣取最低折扣价)定价,单价写入订单明细后不再变化
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单明细"
// @Success      200 {object} response.Response{data=apporder.OrderResponse} "下单成功"
// @Failure      400 {object} response.Response "参数错误(如同一本书出现两次)"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.CreateOrderItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID: middleware.MustGetUserID(c),
		Items:  items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Description  只能查看自己的订单,管理员可以查看全部
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.getOrderUseCase.Execute(c.Request.Context(), apporder.GetOrderRequest{
		OrderID: id,
		UserID:  middleware.MustGetUserID(c),
		IsAdmin: middleware.IsAdmin(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOrders 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        offset query int false "偏移量"
// @Param        limit  query int false "每页数量(1-100)"
// @Success      200 {object} response.Response{data=pagination.Page[apporder.OrderResponse]}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListMyOrdersRequest{
		UserID: middleware.MustGetUserID(c),
		Offset: q.Offset,
		Limit:  q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}
