package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appdiscount "github.com/xiebiao/bookcatalog/internal/application/discount"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// 目录查询(列表、折扣、搜索、排行、详情、报价)公开,上架/修改/删除需要管理员
type BookHandler struct {
	listBooks      *appbook.ListBooksUseCase
	listDiscounted *appbook.ListDiscountedUseCase
	searchBooks    *appbook.SearchBooksUseCase
	rankBooks      *appbook.RankBooksUseCase
	getBook        *appbook.GetBookUseCase
	priceQuote     *appbook.PriceQuoteUseCase
	bookDiscounts  *appdiscount.ListBookDiscountsUseCase
	createBook     *appbook.CreateBookUseCase
	updateBook     *appbook.UpdateBookUseCase
	deleteBook     *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	listDiscounted *appbook.ListDiscountedUseCase,
	searchBooks *appbook.SearchBooksUseCase,
	rankBooks *appbook.RankBooksUseCase,
	getBook *appbook.GetBookUseCase,
	priceQuote *appbook.PriceQuoteUseCase,
	bookDiscounts *appdiscount.ListBookDiscountsUseCase,
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:      listBooks,
		listDiscounted: listDiscounted,
		searchBooks:    searchBooks,
		rankBooks:      rankBooks,
		getBook:        getBook,
		priceQuote:     priceQuote,
		bookDiscounts:  bookDiscounts,
		createBook:     createBook,
		updateBook:     updateBook,
		deleteBook:     deleteBook,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  可按分类、作者、最低平均分过滤,按当天售价排序;不排序时按ID升序
// @Tags         图书
// @Produce      json
// @Param        offset      query int    false "偏移量" default(0)
// @Param        limit       query int    false "每页数量(1-100)" default(10)
// @Param        category_id query int    false "分类ID"
// @Param        author_id   query int    false "作者ID"
// @Param        min_stars   query number false "最低平均分(1-5)"
// @Param        sort_by     query string false "price_asc|price_desc"
// @Success      200 {object} response.Response{data=pagination.Page[appbook.BookItem]}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Offset:     q.Offset,
		Limit:      q.Limit,
		CategoryID: q.CategoryID,
		AuthorID:   q.AuthorID,
		MinStars:   q.MinStars,
		SortBy:     q.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// ListDiscounted 今天有生效折扣的图书
// @Summary      折扣图书
// @Tags         图书
// @Produce      json
// @Param        offset      query int    false "偏移量"
// @Param        limit       query int    false "每页数量(1-100)"
// @Param        category_id query int    false "分类ID"
// @Param        author_id   query int    false "作者ID"
// @Param        min_stars   query number false "最低平均分(1-5)"
// @Success      200 {object} response.Response{data=pagination.Page[appbook.BookItem]}
// @Router       /api/v1/books/discounts [get]
func (h *BookHandler) ListDiscounted(c *gin.Context) {
	var q dto.DiscountedBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.listDiscounted.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Offset:     q.Offset,
		Limit:      q.Limit,
		CategoryID: q.CategoryID,
		AuthorID:   q.AuthorID,
		MinStars:   q.MinStars,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Search 按书名或作者名搜索(不区分大小写)
// @Summary      搜索图书
// @Tags         图书
// @Produce      json
// @Param        query  query string true  "关键词"
// @Param        offset query int    false "偏移量"
// @Param        limit  query int    false "每页数量(1-100)"
// @Success      200 {object} response.Response{data=pagination.Page[appbook.BookItem]}
// @Router       /api/v1/books/search [get]
func (h *BookHandler) Search(c *gin.Context) {
	var q dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.searchBooks.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Query:  q.Query,
		Offset: q.Offset,
		Limit:  q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Recommended 平均分最高的图书
// @Summary      推荐榜
// @Tags         图书
// @Produce      json
// @Param        limit query int false "条数(1-100)" default(10)
// @Success      200 {object} response.Response{data=[]appbook.RankedItem}
// @Router       /api/v1/books/recommended [get]
func (h *BookHandler) Recommended(c *gin.Context) {
	h.rank(c, appbook.RankRecommended)
}

// Popular 书评最多的图书
// @Summary      热门榜
// @Tags         图书
// @Produce      json
// @Param        limit query int false "条数(1-100)" default(10)
// @Success      200 {object} response.Response{data=[]appbook.RankedItem}
// @Router       /api/v1/books/popular [get]
func (h *BookHandler) Popular(c *gin.Context) {
	h.rank(c, appbook.RankPopular)
}

// TopDiscounted 今天降价最多的图书
// @Summary      折扣榜
// @Tags         图书
// @Produce      json
// @Param        limit query int false "条数(1-100)" default(10)
// @Success      200 {object} response.Response{data=[]appbook.RankedItem}
// @Router       /api/v1/books/top-discounted [get]
func (h *BookHandler) TopDiscounted(c *gin.Context) {
	h.rank(c, appbook.RankTopDiscounted)
}

func (h *BookHandler) rank(c *gin.Context, view appbook.RankView) {
	var q dto.RankQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	items, err := h.rankBooks.Execute(c.Request.Context(), appbook.RankBooksRequest{View: view, Limit: q.Limit})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookItem}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// PriceQuote 按当天售价报价
// @Summary      报价
// @Tags         图书
// @Produce      json
// @Param        id       path  int true  "图书ID"
// @Param        quantity query int false "数量(1-999)" default(1)
// @Success      200 {object} response.Response{data=appbook.PriceQuoteResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/price [get]
func (h *BookHandler) PriceQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q dto.PriceQuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	quote, err := h.priceQuote.Execute(c.Request.Context(), appbook.PriceQuoteRequest{BookID: id, Quantity: q.Quantity})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, quote)
}

// Discounts 图书的全部折扣
// @Summary      图书折扣列表
// @Tags         折扣
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appdiscount.BookDiscountsResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/discounts [get]
func (h *BookHandler) Discounts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.bookDiscounts.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// CreateBook 上架图书
// @Summary      上架图书
// @Description  作者和分类必须已存在
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookItem}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "需要管理员"
// @Failure      404 {object} response.Response "作者或分类不存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.createBook.Execute(c.Request.Context(), appbook.CreateBookRequest{
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Title:      req.Title,
		Summary:    req.Summary,
		Price:      req.Price,
		CoverPhoto: req.CoverPhoto,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "修改内容"
// @Success      200 {object} response.Response{data=appbook.BookItem}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.updateBook.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:         id,
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Title:      req.Title,
		Summary:    req.Summary,
		Price:      req.Price,
		CoverPhoto: req.CoverPhoto,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteBook 删除图书(连同折扣和书评)
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
