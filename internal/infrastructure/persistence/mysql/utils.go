package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// isDuplicateError 判断是否为唯一索引冲突
// MySQL: 1062 Duplicate entry；SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// dbError 包装数据库错误，原始错误只进日志
func dbError(err error, message string) *apperrors.AppError {
	return &apperrors.AppError{Code: apperrors.ErrCodeDatabaseError, Message: message, Err: err}
}

const likeEscape = "!"

// likeContains 构造不区分大小写的包含匹配模式，转义通配符
func likeContains(key string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(key)) + "%"
}

// unicodeLower 注册到SQLite连接上的lower(x)
// NULL原样返回，BLOB和数字不转换
func unicodeLower(v any) any {
	switch x := v.(type) {
	case string:
		return strings.ToLower(x)
	case []byte:
		if x == nil {
			return nil
		}
		return x
	default:
		return v
	}
}

// normalizePage 兜底分页参数
func normalizePage(page, pageSize int) (limit, offset int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return pageSize, page * pageSize
}
