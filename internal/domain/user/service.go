package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Service 用户领域服务
// 密码加密、密码校验、资料修改时的旧密码确认都在这里完成
type Service interface {
	// Register 创建用户(注册时isAdmin=false,管理员创建用户时可指定)
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Login 邮箱+密码登录
	Login(ctx context.Context, email, password string) (*User, error)

	// GetUser 根据ID获取用户
	GetUser(ctx context.Context, id uint) (*User, error)

	// UpdateProfile 修改资料,必须提供当前密码
	UpdateProfile(ctx context.Context, id uint, params ProfileParams) (*User, error)

	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error

	// DeleteUser 删除用户
	DeleteUser(ctx context.Context, id uint) error

	// ListUsers 用户列表
	ListUsers(ctx context.Context, offset, limit int) ([]*User, int64, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

// RegisterParams 注册参数
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// ProfileParams 修改资料参数
type ProfileParams struct {
	FirstName       string
	LastName        string
	Email           string
	CurrentPassword string
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: 12}
}

// NewServiceWithCost 指定bcrypt cost(测试用bcrypt.MinCost加速)
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

// Register 用户注册
// 业务规则:
// 1. 邮箱格式校验
// 2. 密码强度校验(8-20位,包含字母和数字)
// 3. 姓名不能为空
func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if !isValidEmail(params.Email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}
	if err := validatePasswordStrength(params.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.FirstName) == "" || strings.TrimSpace(params.LastName) == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")
	}

	hashed, err := s.hash(params.Password)
	if err != nil {
		return nil, err
	}

	u := NewUser(params.FirstName, params.LastName, params.Email, hashed, params.IsAdmin)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 用户登录
// 邮箱不存在和密码错误返回同一个错误,避免探测已注册邮箱
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser 根据ID获取用户
func (s *service) GetUser(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile 修改资料
func (s *service) UpdateProfile(ctx context.Context, id uint, params ProfileParams) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(u.Password, params.CurrentPassword); err != nil {
		return nil, err
	}
	if params.Email != "" && !isValidEmail(params.Email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	u.UpdateProfile(params.FirstName, params.LastName, params.Email)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword 修改密码
func (s *service) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ValidatePassword(u.Password, oldPassword); err != nil {
		return err
	}
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashed, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	u.ChangePassword(hashed)
	return s.repo.Update(ctx, u)
}

// DeleteUser 删除用户
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListUsers 用户列表
func (s *service) ListUsers(ctx context.Context, offset, limit int) ([]*User, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

func (s *service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	hasLetter    = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
)

// isValidEmail 邮箱格式校验
func isValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// validatePasswordStrength 密码强度校验
// 规则:8-20位,必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
