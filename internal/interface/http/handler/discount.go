package handler

import (
	"github.com/gin-gonic/gin"

	appdiscount "github.com/xiebiao/bookcatalog/internal/application/discount"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// DiscountHandler 折扣HTTP处理器(管理员)
// 图书的折扣列表在BookHandler.Discounts
type DiscountHandler struct {
	create *appdiscount.CreateDiscountUseCase
	update *appdiscount.UpdateDiscountUseCase
	delete *appdiscount.DeleteDiscountUseCase
}

// NewDiscountHandler 创建折扣处理器
func NewDiscountHandler(
	create *appdiscount.CreateDiscountUseCase,
	update *appdiscount.UpdateDiscountUseCase,
	delete *appdiscount.DeleteDiscountUseCase,
) *DiscountHandler {
	return &DiscountHandler{create: create, update: update, delete: delete}
}

// Create 新建折扣
// @Summary      新建折扣
// @Description  同一本书的折扣时间段可以重叠,售价取当天最低折扣价
// @Tags         折扣
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.DiscountRequest true "折扣信息"
// @Success      200 {object} response.Response{data=appdiscount.DiscountItem}
// @Failure      400 {object} response.Response "日期或价格不合法"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/discounts [post]
func (h *DiscountHandler) Create(c *gin.Context) {
	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if req.BookID == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: book_id不能为空")
		return
	}

	item, err := h.create.Execute(c.Request.Context(), appdiscount.CreateDiscountRequest{
		BookID:    req.BookID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Price:     req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Update 修改折扣
// @Summary      修改折扣
// @Tags         折扣
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                 true "折扣ID"
// @Param        request body dto.DiscountRequest true "起止日期和价格(book_id忽略)"
// @Success      200 {object} response.Response{data=appdiscount.DiscountItem}
// @Failure      404 {object} response.Response "折扣不存在"
// @Router       /api/v1/discounts/{id} [put]
func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.update.Execute(c.Request.Context(), appdiscount.UpdateDiscountRequest{
		ID:        id,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Price:     req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Delete 删除折扣
// @Summary      删除折扣
// @Tags         折扣
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "折扣ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "折扣不存在"
// @Router       /api/v1/discounts/{id} [delete]
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.delete.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
