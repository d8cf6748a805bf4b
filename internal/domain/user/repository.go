package user

import (
	"context"
)

// Repository 用户仓储接口
type Repository interface {
	// Create 用户名重复返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 不存在返回ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Update 更新用户及角色
	Update(ctx context.Context, user *User) error

	// Delete 删除用户及角色，不存在时什么也不做
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, params ListParams) ([]*User, int64, error)
}

// ListParams 分页参数，Page从0开始
type ListParams struct {
	Page     int
	PageSize int
}

// Offset 分页偏移量
func (p ListParams) Offset() int {
	return p.Page * p.PageSize
}
