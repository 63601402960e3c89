package user

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// GetProfileUseCase 当前用户资料
type GetProfileUseCase struct {
	userService user.Service
}

// NewGetProfileUseCase 创建用例
func NewGetProfileUseCase(userService user.Service) *GetProfileUseCase {
	return &GetProfileUseCase{userService: userService}
}

// Execute 执行查询
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userService.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

// UpdateProfileRequest 修改资料请求
// 空字符串表示不修改;CurrentPassword必填
type UpdateProfileRequest struct {
	UserID          uint
	FirstName       string
	LastName        string
	Email           string
	CurrentPassword string
}

// UpdateProfileUseCase 修改资料
type UpdateProfileUseCase struct {
	userService user.Service
}

// NewUpdateProfileUseCase 创建用例
func NewUpdateProfileUseCase(userService user.Service) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userService: userService}
}

// Execute 当前密码错误返回ErrInvalidPassword,邮箱被占用返回ErrEmailDuplicate
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, req UpdateProfileRequest) (*UserInfo, error) {
	u, err := uc.userService.UpdateProfile(ctx, req.UserID, user.ProfileParams{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

// ChangePasswordUseCase 修改密码
type ChangePasswordUseCase struct {
	userService user.Service
}

// NewChangePasswordUseCase 创建用例
func NewChangePasswordUseCase(userService user.Service) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userService: userService}
}

// Execute 执行修改
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, req ChangePasswordRequest) error {
	return uc.userService.ChangePassword(ctx, req.UserID, req.OldPassword, req.NewPassword)
}
