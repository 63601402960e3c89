package user

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// ListUsersUseCase 用户列表(管理员)
type ListUsersUseCase struct {
	userService user.Service
}

// NewListUsersUseCase 创建用例
func NewListUsersUseCase(userService user.Service) *ListUsersUseCase {
	return &ListUsersUseCase{userService: userService}
}

// Execute 执行查询
func (uc *ListUsersUseCase) Execute(ctx context.Context, offset int, limit *int) (*pagination.Page[*UserInfo], error) {
	p, err := pagination.Resolve(offset, limit, pagination.DefaultLimit, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	list, total, err := uc.userService.ListUsers(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*UserInfo, len(list))
	for i, u := range list {
		items[i] = toUserInfo(u)
	}
	return pagination.Paginate(total, items, p.Offset, p.Limit)
}

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	RegisterRequest
	IsAdmin bool
}

// CreateUserUseCase 管理员创建用户,可以指定管理员标记
type CreateUserUseCase struct {
	userService user.Service
}

// NewCreateUserUseCase 创建用例
func NewCreateUserUseCase(userService user.Service) *CreateUserUseCase {
	return &CreateUserUseCase{userService: userService}
}

// Execute 执行创建
func (uc *CreateUserUseCase) Execute(ctx context.Context, req CreateUserRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, user.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Uint("user_id", u.ID).Bool("is_admin", u.IsAdmin).Msg("管理员创建用户")
	return toUserInfo(u), nil
}

// DeleteUserUseCase 删除用户(管理员)
type DeleteUserUseCase struct {
	userService  user.Service
	sessionStore SessionStore
}

// NewDeleteUserUseCase 创建用例
func NewDeleteUserUseCase(userService user.Service, sessionStore SessionStore) *DeleteUserUseCase {
	return &DeleteUserUseCase{userService: userService, sessionStore: sessionStore}
}

// Execute 删除用户并清掉会话,之后该用户的Refresh Token不能再用
func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.userService.DeleteUser(ctx, id); err != nil {
		return err
	}
	if err := uc.sessionStore.DeleteSession(ctx, id); err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint("user_id", id).Msg("删除用户会话失败")
	}

	log.Ctx(ctx).Info().Uint("user_id", id).Msg("用户已删除")
	return nil
}
