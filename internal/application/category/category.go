package category

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// CategoryItem 分类DTO
type CategoryItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toItem(c *category.Category) CategoryItem {
	return CategoryItem{ID: c.ID, Name: c.Name, Description: c.Description}
}

// CreateCategoryRequest 新建分类请求
type CreateCategoryRequest struct {
	Name        string
	Description string
}

// CreateCategoryUseCase 新建分类(管理员)
type CreateCategoryUseCase struct {
	repo category.Repository
}

// NewCreateCategoryUseCase 创建用例
func NewCreateCategoryUseCase(repo category.Repository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{repo: repo}
}

// Execute 重名返回ErrCategoryDuplicate
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, req CreateCategoryRequest) (*CategoryItem, error) {
	c, err := category.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Uint("category_id", c.ID).Str("name", c.Name).Msg("分类已创建")
	item := toItem(c)
	return &item, nil
}

// GetCategoryUseCase 分类详情
type GetCategoryUseCase struct {
	repo category.Repository
}

// NewGetCategoryUseCase 创建用例
func NewGetCategoryUseCase(repo category.Repository) *GetCategoryUseCase {
	return &GetCategoryUseCase{repo: repo}
}

// Execute 执行查询
func (uc *GetCategoryUseCase) Execute(ctx context.Context, id uint) (*CategoryItem, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item := toItem(c)
	return &item, nil
}

// ListCategoriesUseCase 分类列表
// 分类数量通常很少,仍然走统一的分页参数
type ListCategoriesUseCase struct {
	repo category.Repository
}

// NewListCategoriesUseCase 创建用例
func NewListCategoriesUseCase(repo category.Repository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{repo: repo}
}

// Execute 执行查询
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, offset int, limit *int) (*pagination.Page[CategoryItem], error) {
	p, err := pagination.Resolve(offset, limit, pagination.DefaultLimit, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.repo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryItem, len(list))
	for i, c := range list {
		items[i] = toItem(c)
	}
	return pagination.Paginate(total, items, p.Offset, p.Limit)
}

// UpdateCategoryRequest 修改请求,空字符串表示不修改
type UpdateCategoryRequest struct {
	ID          uint
	Name        string
	Description string
}

// UpdateCategoryUseCase 修改分类(管理员)
type UpdateCategoryUseCase struct {
	repo category.Repository
}

// NewUpdateCategoryUseCase 创建用例
func NewUpdateCategoryUseCase(repo category.Repository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{repo: repo}
}

// Execute 执行修改
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, req UpdateCategoryRequest) (*CategoryItem, error) {
	c, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		if err := c.Rename(req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != "" {
		c.Description = req.Description
	}

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	item := toItem(c)
	return &item, nil
}

// DeleteCategoryUseCase 删除分类(管理员)
// 还有图书引用时返回ErrCategoryInUse
type DeleteCategoryUseCase struct {
	repo category.Repository
}

// NewDeleteCategoryUseCase 创建用例
func NewDeleteCategoryUseCase(repo category.Repository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{repo: repo}
}

// Execute 执行删除
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Uint("category_id", id).Msg("分类已删除")
	return nil
}
