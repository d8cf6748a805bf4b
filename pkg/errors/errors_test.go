package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"资源不存在", New(ErrCodeBookNotFound, "图书不存在"), http.StatusNotFound},
		{"作者不存在", New(ErrCodeAuthorNotFound, "作者不存在"), http.StatusNotFound},
		{"实体已存在", New(ErrCodeAlreadyExists, "作者已存在"), http.StatusConflict},
		{"唯一约束冲突", New(ErrCodeISBNDuplicate, "ISBN号已存在"), http.StatusBadRequest},
		{"参数错误", ErrInvalidParams, http.StatusBadRequest},
		{"参数格式错误", ErrBindError, http.StatusBadRequest},
		{"数据库错误", New(ErrCodeDatabaseError, "查询失败"), http.StatusInternalServerError},
		{"未登录", ErrUnauthorized, http.StatusUnauthorized},
		{"Token过期", ErrTokenExpired, http.StatusUnauthorized},
		{"无权限", ErrForbidden, http.StatusForbidden},
		{"内部错误", Wrap(errors.New("boom"), "查询失败"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.HTTPStatus())
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("包装后的AppError能被提取", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", ErrForbidden)
		assert.Same(t, ErrForbidden, GetAppError(wrapped))
	})

	t.Run("普通错误转换为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("connection refused"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.EqualError(t, appErr.Unwrap(), "connection refused")
	})
}
