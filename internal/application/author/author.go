package author

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// AuthorItem 作者DTO
type AuthorItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func toItem(a *author.Author) AuthorItem {
	return AuthorItem{ID: a.ID, Name: a.Name, Bio: a.Bio}
}

// CreateAuthorRequest 新建作者请求
type CreateAuthorRequest struct {
	Name string
	Bio  string
}

// CreateAuthorUseCase 新建作者(管理员)
type CreateAuthorUseCase struct {
	repo author.Repository
}

// NewCreateAuthorUseCase 创建用例
func NewCreateAuthorUseCase(repo author.Repository) *CreateAuthorUseCase {
	return &CreateAuthorUseCase{repo: repo}
}

// Execute 重名返回ErrAuthorDuplicate
func (uc *CreateAuthorUseCase) Execute(ctx context.Context, req CreateAuthorRequest) (*AuthorItem, error) {
	a, err := author.NewAuthor(req.Name, req.Bio)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Uint("author_id", a.ID).Str("name", a.Name).Msg("作者已创建")
	item := toItem(a)
	return &item, nil
}

// GetAuthorUseCase 作者详情
type GetAuthorUseCase struct {
	repo author.Repository
}

// NewGetAuthorUseCase 创建用例
func NewGetAuthorUseCase(repo author.Repository) *GetAuthorUseCase {
	return &GetAuthorUseCase{repo: repo}
}

// Execute 执行查询
func (uc *GetAuthorUseCase) Execute(ctx context.Context, id uint) (*AuthorItem, error) {
	a, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item := toItem(a)
	return &item, nil
}

// ListAuthorsUseCase 作者列表,按ID升序
type ListAuthorsUseCase struct {
	repo author.Repository
}

// NewListAuthorsUseCase 创建用例
func NewListAuthorsUseCase(repo author.Repository) *ListAuthorsUseCase {
	return &ListAuthorsUseCase{repo: repo}
}

// Execute 执行查询
func (uc *ListAuthorsUseCase) Execute(ctx context.Context, offset int, limit *int) (*pagination.Page[AuthorItem], error) {
	p, err := pagination.Resolve(offset, limit, pagination.DefaultLimit, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.repo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]AuthorItem, len(list))
	for i, a := range list {
		items[i] = toItem(a)
	}
	return pagination.Paginate(total, items, p.Offset, p.Limit)
}

// UpdateAuthorRequest 修改请求,空字符串表示不修改
type UpdateAuthorRequest struct {
	ID   uint
	Name string
	Bio  string
}

// UpdateAuthorUseCase 修改作者(管理员)
type UpdateAuthorUseCase struct {
	repo author.Repository
}

// NewUpdateAuthorUseCase 创建用例
func NewUpdateAuthorUseCase(repo author.Repository) *UpdateAuthorUseCase {
	return &UpdateAuthorUseCase{repo: repo}
}

// Execute 执行修改
func (uc *UpdateAuthorUseCase) Execute(ctx context.Context, req UpdateAuthorRequest) (*AuthorItem, error) {
	a, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		if err := a.Rename(req.Name); err != nil {
			return nil, err
		}
	}
	if req.Bio != "" {
		a.Bio = req.Bio
	}

	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	item := toItem(a)
	return &item, nil
}

// DeleteAuthorUseCase 删除作者(管理员)
// 还有图书引用时返回ErrAuthorInUse
type DeleteAuthorUseCase struct {
	repo author.Repository
}

// NewDeleteAuthorUseCase 创建用例
func NewDeleteAuthorUseCase(repo author.Repository) *DeleteAuthorUseCase {
	return &DeleteAuthorUseCase{repo: repo}
}

// Execute 执行删除
func (uc *DeleteAuthorUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Uint("author_id", id).Msg("作者已删除")
	return nil
}
