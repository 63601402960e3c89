package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50" example:"Ada"`
	LastName  string `json:"last_name" binding:"required,max=50" example:"Lovelace"`
	Email     string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password  string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 修改资料,必须带当前密码
type UpdateProfileRequest struct {
	FirstName       string `json:"first_name" binding:"max=50" example:"Augusta"`
	LastName        string `json:"last_name" binding:"max=50"`
	Email           string `json:"email" binding:"omitempty,email"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// ChangePasswordRequest 修改密码
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=20"`
}

// CreateUserRequest 管理员创建用户
type CreateUserRequest struct {
	RegisterRequest
	IsAdmin bool `json:"is_admin" example:"false"`
}
