package genre

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 名称重复返回ErrGenreNameDuplicate
	Create(ctx context.Context, genre *Genre) error
	FindByID(ctx context.Context, id uint) (*Genre, error)
	// FindByName 精确匹配名称
	FindByName(ctx context.Context, name string) (*Genre, error)
	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Genre, int64, error)
}

// ListParams 分页参数，Page从0开始
type ListParams struct {
	Page     int
	PageSize int
}

// Offset 分页偏移量
func (p ListParams) Offset() int {
	return p.Page * p.PageSize
}
