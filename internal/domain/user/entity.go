package user

import (
	"strings"
	"time"
)

// User 用户实体(聚合根)
// 1. Password是bcrypt哈希值,不暴露明文
// 2. IsAdmin决定能否调用管理接口(图书/作者/分类/折扣维护、用户管理)
type User struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
	Password  string // bcrypt哈希值
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(firstName, lastName, email, hashedPassword string, isAdmin bool) *User {
	now := time.Now()
	return &User{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     normalizeEmail(email),
		Password:  hashedPassword,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName 全名
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UpdateProfile 修改资料,空值表示不修改
func (u *User) UpdateProfile(firstName, lastName, email string) {
	if v := strings.TrimSpace(firstName); v != "" {
		u.FirstName = v
	}
	if v := strings.TrimSpace(lastName); v != "" {
		u.LastName = v
	}
	if v := normalizeEmail(email); v != "" {
		u.Email = v
	}
	u.UpdatedAt = time.Now()
}

// ChangePassword 替换密码哈希
func (u *User) ChangePassword(hashedPassword string) {
	u.Password = hashedPassword
	u.UpdatedAt = time.Now()
}

// normalizeEmail 邮箱统一小写
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
