package user

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// RegisterParams 注册参数
type RegisterParams struct {
	Name     string
	Username string
	Password string
	Enabled  bool
	Roles    []Role // 为空时默认ROLE_USER
}

// UpdateParams 更新参数，nil/空字段保持不变
type UpdateParams struct {
	Name     *string
	Username *string
	Password *string
	Enabled  *bool
	Roles    []Role
}

// Service 用户领域服务
type Service interface {
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Login 校验用户名密码，只允许启用的用户登录
	// 用户不存在、已禁用、密码错误统一返回ErrInvalidPassword
	Login(ctx context.Context, username, password string) (*User, error)

	GetByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, params ListParams) ([]*User, int64, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*User, error)

	// Delete 不存在时什么也不做
	Delete(ctx context.Context, id uint) error

	// EnsureAdmin 管理员不存在时创建（ROLE_ADMIN + ROLE_USER），返回是否新建
	EnsureAdmin(ctx context.Context, name, username, password string) (bool, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: bcrypt.DefaultCost}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	// 1. 参数校验
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if err := validatePasswordStrength(params.Password); err != nil {
		return nil, err
	}
	roles := params.Roles
	if len(roles) == 0 {
		roles = []Role{RoleUser}
	}
	if err := validateRoles(roles); err != nil {
		return nil, err
	}

	// 2. 密码加密
	hashed, err := s.hash(params.Password)
	if err != nil {
		return nil, err
	}

	// 3. 持久化，用户名唯一性由唯一索引保证
	u := NewUser(strings.TrimSpace(params.Name), username, hashed, params.Enabled, roles)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if !u.Enabled {
		return nil, apperrors.ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*User, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil && *params.Name != "" {
		u.Name = strings.TrimSpace(*params.Name)
	}
	if params.Username != nil && strings.TrimSpace(*params.Username) != "" {
		u.Username = strings.TrimSpace(*params.Username)
	}
	if params.Password != nil && *params.Password != "" {
		if err := validatePasswordStrength(*params.Password); err != nil {
			return nil, err
		}
		hashed, err := s.hash(*params.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hashed
	}
	if params.Enabled != nil {
		u.Enabled = *params.Enabled
	}
	if len(params.Roles) > 0 {
		if err := validateRoles(params.Roles); err != nil {
			return nil, err
		}
		u.Roles = lo.Uniq(params.Roles)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, name, username, password string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}

	_, err = s.Register(ctx, RegisterParams{
		Name:     name,
		Username: username,
		Password: password,
		Enabled:  true,
		Roles:    []Role{RoleAdmin, RoleUser},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

// validatePasswordStrength 8-64位（bcrypt只取前72字节）
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 64 {
		return apperrors.ErrWeakPassword
	}
	return nil
}

func validateRoles(roles []Role) error {
	for _, r := range roles {
		if !r.Valid() {
			return ErrInvalidRole
		}
	}
	return nil
}
