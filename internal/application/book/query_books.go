package book

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/pagination"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// GetBookUseCase 查询单本图书
type GetBookUseCase struct {
	bookService book.Service
}

func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookView, error) {
	b, err := uc.bookService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toViewPtr(b), nil
}

// ListBooksUseCase 按ID升序分页
type ListBooksUseCase struct {
	bookService book.Service
}

func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

func (uc *ListBooksUseCase) Execute(ctx context.Context, page, size int) (*pagination.Result[BookView], error) {
	page, size = pagination.Normalize(page, size)

	books, total, err := uc.bookService.List(ctx, book.ListParams{Page: page, PageSize: size})
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(toViews(books), total, page, size), nil
}

// SearchBooksUseCase 关键词搜索
// 书名、ISBN、作者名/姓、分类名任一包含关键词即命中
// 关键词按原样匹配（包括首尾空格），空串或全是空白时返回全部
type SearchBooksUseCase struct {
	bookService book.Service
	log         *zap.Logger
}

func NewSearchBooksUseCase(bookService book.Service, log *zap.Logger) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService, log: log}
}

func (uc *SearchBooksUseCase) Execute(ctx context.Context, key string, page, size int) (_ *pagination.Result[BookView], err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchBooks")
	defer func() { tracing.EndSpan(span, err) }()

	if strings.TrimSpace(key) == "" {
		key = ""
	}
	page, size = pagination.Normalize(page, size)
	uc.log.Debug("搜索图书", zap.String("key", key), zap.Int("page", page), zap.Int("size", size))

	books, total, err := uc.bookService.Search(ctx, key, book.ListParams{Page: page, PageSize: size})
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(toViews(books), total, page, size), nil
}

func toViews(books []*book.Book) []BookView {
	return lo.Map(books, func(b *book.Book, _ int) BookView { return ToView(b) })
}
