package user

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string
	Username string
	Password string
}

// RegisterUseCase 用户注册
type RegisterUseCase struct {
	userService user.Service
	log         *zap.Logger
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, log *zap.Logger) *RegisterUseCase {
	return &RegisterUseCase{userService: userService, log: log}
}

// Execute 执行注册
// 新用户固定为ROLE_USER且未启用，等待管理员启用
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserView, error) {
	uc.log.Debug("注册用户", zap.String("username", req.Username))

	u, err := uc.userService.Register(ctx, user.RegisterParams{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Enabled:  false,
		Roles:    []user.Role{user.RoleUser},
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("用户已注册", zap.Uint("user_id", u.ID), zap.String("username", u.Username))
	view := ToView(u)
	return &view, nil
}

// EnsureAdminUseCase 启动时确保管理员账号存在
type EnsureAdminUseCase struct {
	userService user.Service
	log         *zap.Logger
}

func NewEnsureAdminUseCase(userService user.Service, log *zap.Logger) *EnsureAdminUseCase {
	return &EnsureAdminUseCase{userService: userService, log: log}
}

// Execute username为空时跳过
func (uc *EnsureAdminUseCase) Execute(ctx context.Context, name, username, password string) error {
	if username == "" {
		return nil
	}

	created, err := uc.userService.EnsureAdmin(ctx, name, username, password)
	if err != nil {
		return err
	}
	if created {
		uc.log.Info("已创建管理员账号", zap.String("username", username))
	}
	return nil
}

func toRoles(names []string) []user.Role {
	return lo.Map(names, func(n string, _ int) user.Role { return user.Role(n) })
}
