package genre

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	ErrGenreNotFound      = apperrors.New(apperrors.ErrCodeGenreNotFound, "分类不存在")
	ErrGenreAlreadyExists = apperrors.New(apperrors.ErrCodeAlreadyExists, "分类已存在")
	ErrGenreNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已被使用")
	ErrNameRequired       = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空")
)
