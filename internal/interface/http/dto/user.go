package dto

// RegisterRequest HTTP层注册请求
// 角色和启用状态不由注册方决定，只能由管理员通过更新接口修改
type RegisterRequest struct {
	Name     string `json:"name" binding:"max=100" example:"Alice"`
	Username string `json:"username" binding:"required,min=3,max=50" example:"alice"`
	Password string `json:"password" binding:"required,min=8,max=64" example:"password123"`
}

// RefreshTokenRequest HTTP层刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UpdateUserRequest HTTP层更新用户请求，缺省字段保持不变
type UpdateUserRequest struct {
	Name     *string  `json:"name" binding:"omitempty,max=100"`
	Username *string  `json:"username" binding:"omitempty,min=3,max=50"`
	Password *string  `json:"password" binding:"omitempty,min=8,max=64"`
	Enabled  *bool    `json:"enabled"`
	Roles    []string `json:"roles" binding:"omitempty,dive,oneof=ROLE_ADMIN ROLE_USER"`
}
