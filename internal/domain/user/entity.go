package user

import (
	"time"

	"github.com/samber/lo"
)

// Role 角色
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User 用户实体
// 密码为bcrypt哈希；Roles存放在authorities表
type User struct {
	ID        uint
	Name      string
	Username  string
	Password  string
	Enabled   bool
	Roles     []Role
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

// NewUser 创建用户，hashedPassword必须是bcrypt加密后的密码
func NewUser(name, username, hashedPassword string, enabled bool, roles []Role) *User {
	return &User{
		Name:     name,
		Username: username,
		Password: hashedPassword,
		Enabled:  enabled,
		Roles:    lo.Uniq(roles),
	}
}

// HasRole 是否拥有角色
func (u *User) HasRole(role Role) bool {
	return lo.Contains(u.Roles, role)
}

// RoleNames 角色名，用于JWT Claims
func (u *User) RoleNames() []string {
	return lo.Map(u.Roles, func(r Role, _ int) string { return string(r) })
}
