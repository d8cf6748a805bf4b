package user

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	ErrUserNotFound      = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "用户名已存在")
	ErrUsernameRequired  = apperrors.New(apperrors.ErrCodeInvalidParams, "用户名不能为空")
	ErrInvalidRole       = apperrors.New(apperrors.ErrCodeInvalidParams, "未知的角色")
)
