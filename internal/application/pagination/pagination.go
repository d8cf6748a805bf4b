// Package pagination 分页参数与结果，Page从0开始
package pagination

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize 负数页码归0，size默认10、最大100
func Normalize(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// Result 分页查询结果
type Result[T any] struct {
	List     []T
	Total    int64
	Page     int
	PageSize int
}

// NewResult 创建分页结果，List为nil时置为空切片
func NewResult[T any](list []T, total int64, page, pageSize int) *Result[T] {
	if list == nil {
		list = []T{}
	}
	return &Result[T]{List: list, Total: total, Page: page, PageSize: pageSize}
}
