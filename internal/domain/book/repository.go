package book

import (
	"context"
)

// Repository 图书仓储接口
// 读取的图书总是带上完整的Authors和Genres
type Repository interface {
	// Create 写入图书行和两张关联表，ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Save 更新标量字段，并用当前Authors/Genres重写关联行（同一事务）
	Save(ctx context.Context, book *Book) error

	// Delete 删除图书及其关联行，不存在时什么也不做
	Delete(ctx context.Context, id uint) error

	// List 按ID升序分页
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Search 书名、ISBN、作者名/姓、分类名任一字段包含关键词（不区分大小写）
	Search(ctx context.Context, key string, params ListParams) ([]*Book, int64, error)

	// ListByAuthorID 关联了该作者的所有图书
	ListByAuthorID(ctx context.Context, authorID uint) ([]*Book, error)

	// ListByGenreID 关联了该分类的所有图书
	ListByGenreID(ctx context.Context, genreID uint) ([]*Book, error)
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
