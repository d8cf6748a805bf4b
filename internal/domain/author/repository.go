package author

import (
	"context"
)

// Repository 作者仓储接口
type Repository interface {
	// Create 创建作者，回填ID和时间戳
	// 证件号重复返回ErrIdentificationNumberDuplicate
	Create(ctx context.Context, author *Author) error

	// FindByID 不存在返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindByNaturalKey 按FirstName+IdentificationNumber查找，不存在返回ErrAuthorNotFound
	FindByNaturalKey(ctx context.Context, firstName string, identificationNumber int64) (*Author, error)

	// Update 全量更新标量字段
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者行，不处理图书关联（由删除协调器先解除）
	Delete(ctx context.Context, id uint) error

	// List 按ID升序分页
	List(ctx context.Context, params ListParams) ([]*Author, int64, error)
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
