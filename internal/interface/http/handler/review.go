package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	post *appreview.PostReviewUseCase
	list *appreview.ListReviewsUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(post *appreview.PostReviewUseCase, list *appreview.ListReviewsUseCase) *ReviewHandler {
	return &ReviewHandler{post: post, list: list}
}

// Post 发表书评
// @Summary      发表书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Param        request body dto.ReviewRequest true "书评"
// @Success      200 {object} response.Response{data=appreview.ReviewItem}
// @Failure      400 {object} response.Response "评分必须在1-5之间"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) Post(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.post.Execute(c.Request.Context(), appreview.PostReviewRequest{
		BookID: req.BookID,
		Title:  req.Title,
		Body:   req.Body,
		Rating: req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// ListByBook 图书的书评和评分汇总
// @Summary      书评列表
// @Tags         书评
// @Produce      json
// @Param        book_id     path  int  true  "图书ID"
// @Param        offset      query int  false "偏移量"
// @Param        limit       query int  false "每页数量(1-100)"
// @Param        rating_star query int  false "只看某个星级"
// @Param        is_desc     query bool false "按时间倒序"
// @Success      200 {object} response.Response{data=appreview.ListReviewsResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/reviews/book/{book_id} [get]
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	var q dto.ListReviewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.list.Execute(c.Request.Context(), appreview.ListReviewsRequest{
		BookID:     bookID,
		Offset:     q.Offset,
		Limit:      q.Limit,
		RatingStar: q.RatingStar,
		IsDesc:     q.IsDesc,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}
