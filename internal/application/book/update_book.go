package book

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// UpdateBookRequest 全量更新，所有标量字段都会被覆盖（WrittenDate为nil即清空）
type UpdateBookRequest struct {
	Title       string
	ISBN        string
	Price       string
	WrittenDate *time.Time
}

// UpdateBookUseCase 全量更新图书标量字段，作者和分类不变
type UpdateBookUseCase struct {
	bookService book.Service
	log         *zap.Logger
}

func NewUpdateBookUseCase(bookService book.Service, log *zap.Logger) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, log: log}
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req UpdateBookRequest) (_ *BookView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook")
	defer func() { tracing.EndSpan(span, err) }()

	uc.log.Debug("更新图书", zap.Uint("book_id", id))

	b, err := uc.bookService.Update(ctx, id, book.Fields{
		Title:       req.Title,
		ISBN:        req.ISBN,
		Price:       req.Price,
		WrittenDate: req.WrittenDate,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("图书已更新", zap.Uint("book_id", id))
	return toViewPtr(b), nil
}

// UpdateBookPartialRequest 部分更新，nil字段保持不变
// AuthorIDs/GenreIDs只追加关联
type UpdateBookPartialRequest struct {
	Title       *string
	ISBN        *string
	Price       *string
	WrittenDate *time.Time
	AuthorIDs   []uint
	GenreIDs    []uint
}

// UpdateBookPartialUseCase 部分更新图书
// 标量字段、每个作者、每个分类依次单独持久化，中途失败时已完成的步骤保留
type UpdateBookPartialUseCase struct {
	bookService book.Service
	log         *zap.Logger
}

func NewUpdateBookPartialUseCase(bookService book.Service, log *zap.Logger) *UpdateBookPartialUseCase {
	return &UpdateBookPartialUseCase{bookService: bookService, log: log}
}

func (uc *UpdateBookPartialUseCase) Execute(ctx context.Context, id uint, req UpdateBookPartialRequest) (_ *BookView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBookPartial")
	defer func() { tracing.EndSpan(span, err) }()

	uc.log.Debug("部分更新图书",
		zap.Uint("book_id", id),
		zap.Uints("author_ids", req.AuthorIDs),
		zap.Uints("genre_ids", req.GenreIDs),
	)

	b, err := uc.bookService.UpdatePartial(ctx, id, book.PartialUpdate{
		Title:       req.Title,
		ISBN:        req.ISBN,
		Price:       req.Price,
		WrittenDate: req.WrittenDate,
		AuthorIDs:   req.AuthorIDs,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("图书已部分更新", zap.Uint("book_id", id))
	return toViewPtr(b), nil
}
