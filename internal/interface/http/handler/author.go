package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	create *appauthor.CreateAuthorUseCase
	get    *appauthor.GetAuthorUseCase
	list   *appauthor.ListAuthorsUseCase
	update *appauthor.UpdateAuthorUseCase
	delete *appauthor.DeleteAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(
	create *appauthor.CreateAuthorUseCase,
	get *appauthor.GetAuthorUseCase,
	list *appauthor.ListAuthorsUseCase,
	update *appauthor.UpdateAuthorUseCase,
	delete *appauthor.DeleteAuthorUseCase,
) *AuthorHandler {
	return &AuthorHandler{create: create, get: get, list: list, update: update, delete: delete}
}

// List 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Param        offset query int false "偏移量"
// @Param        limit  query int false "每页数量(1-100)"
// @Success      200 {object} response.Response{data=pagination.Page[appauthor.AuthorItem]}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, err := h.list.Execute(c.Request.Context(), q.Offset, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=appauthor.AuthorItem}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Create 新建作者
// @Summary      新建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=appauthor.AuthorItem}
// @Failure      409 {object} response.Response "作者名已存在"
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	item, err := h.create.Execute(c.Request.Context(), appauthor.CreateAuthorRequest{Name: req.Name, Bio: req.Bio})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Update 修改作者
// @Summary      修改作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int               true "作者ID"
// @Param        request body dto.AuthorRequest true "修改内容,空字段不修改"
// @Success      200 {object} response.Response{data=appauthor.AuthorItem}
// @Failure      404 {object} response.Response "作者不存在"
// @Failure      409 {object} response.Response "作者名已存在"
// @Router       /api/v1/authors/{id} [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	item, err := h.update.Execute(c.Request.Context(), appauthor.UpdateAuthorRequest{ID: id, Name: req.Name, Bio: req.Bio})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Delete 删除作者
// @Summary      删除作者
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "作者不存在"
// @Failure      409 {object} response.Response "该作者下还有图书"
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
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
