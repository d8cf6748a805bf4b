package author

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 作者领域错误
var (
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrAuthorAlreadyExists 直接创建时自然键已存在
	ErrAuthorAlreadyExists = apperrors.New(apperrors.ErrCodeAlreadyExists, "作者已存在")

	// ErrIdentificationNumberDuplicate 唯一索引冲突（如更新为他人的证件号）
	ErrIdentificationNumberDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "证件号已被其他作者使用")

	ErrFirstNameRequired           = apperrors.New(apperrors.ErrCodeInvalidParams, "作者名不能为空")
	ErrInvalidIdentificationNumber = apperrors.New(apperrors.ErrCodeInvalidParams, "证件号必须大于0")
)
