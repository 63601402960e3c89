package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/bookcatalog/internal/application/category"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	create *appcategory.CreateCategoryUseCase
	get    *appcategory.GetCategoryUseCase
	list   *appcategory.ListCategoriesUseCase
	update *appcategory.UpdateCategoryUseCase
	delete *appcategory.DeleteCategoryUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(
	create *appcategory.CreateCategoryUseCase,
	get *appcategory.GetCategoryUseCase,
	list *appcategory.ListCategoriesUseCase,
	update *appcategory.UpdateCategoryUseCase,
	delete *appcategory.DeleteCategoryUseCase,
) *CategoryHandler {
	return &CategoryHandler{create: create, get: get, list: list, update: update, delete: delete}
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Param        offset query int false "偏移量"
// @Param        limit  query int false "每页数量(1-100)"
// @Success      200 {object} response.Response{data=pagination.Page[appcategory.CategoryItem]}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
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

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcategory.CategoryItem}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
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

// Create 新建分类
// @Summary      新建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=appcategory.CategoryItem}
// @Failure      409 {object} response.Response "分类名已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	item, err := h.create.Execute(c.Request.Context(), appcategory.CreateCategoryRequest{Name: req.Name, Description: req.Description})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Update 修改分类
// @Summary      修改分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int               true "分类ID"
// @Param        request body dto.CategoryRequest true "修改内容,空字段不修改"
// @Success      200 {object} response.Response{data=appcategory.CategoryItem}
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "分类名已存在"
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	item, err := h.update.Execute(c.Request.Context(), appcategory.UpdateCategoryRequest{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Delete 删除分类
// @Summary      删除分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "该分类下还有图书"
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
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
