package user

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/pagination"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

type GetUserUseCase struct {
	userService user.Service
}

func NewGetUserUseCase(userService user.Service) *GetUserUseCase {
	return &GetUserUseCase{userService: userService}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id uint) (*UserView, error) {
	u, err := uc.userService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := ToView(u)
	return &view, nil
}

type ListUsersUseCase struct {
	userService user.Service
}

func NewListUsersUseCase(userService user.Service) *ListUsersUseCase {
	return &ListUsersUseCase{userService: userService}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, page, size int) (*pagination.Result[UserView], error) {
	page, size = pagination.Normalize(page, size)

	users, total, err := uc.userService.List(ctx, user.ListParams{Page: page, PageSize: size})
	if err != nil {
		return nil, err
	}

	views := lo.Map(users, func(u *user.User, _ int) UserView { return ToView(u) })
	return pagination.NewResult(views, total, page, size), nil
}

// UpdateUserRequest 部分更新，nil/空字段保持不变
type UpdateUserRequest struct {
	Name     *string
	Username *string
	Password *string
	Enabled  *bool
	Roles    []string
}

type UpdateUserUseCase struct {
	userService user.Service
	log         *zap.Logger
}

func NewUpdateUserUseCase(userService user.Service, log *zap.Logger) *UpdateUserUseCase {
	return &UpdateUserUseCase{userService: userService, log: log}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, id uint, req UpdateUserRequest) (*UserView, error) {
	u, err := uc.userService.Update(ctx, id, user.UpdateParams{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Enabled:  req.Enabled,
		Roles:    toRoles(req.Roles),
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("用户已更新", zap.Uint("user_id", id))
	view := ToView(u)
	return &view, nil
}

// DeleteUserUseCase 删除用户，不存在时什么也不做
type DeleteUserUseCase struct {
	userService user.Service
	log         *zap.Logger
}

func NewDeleteUserUseCase(userService user.Service, log *zap.Logger) *DeleteUserUseCase {
	return &DeleteUserUseCase{userService: userService, log: log}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.userService.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info("用户已删除", zap.Uint("user_id", id))
	return nil
}
