package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// AssignAuthorUseCase 为图书关联已存在的作者，重复关联不报错
type AssignAuthorUseCase struct {
	bookService book.Service
	log         *zap.Logger
}

func NewAssignAuthorUseCase(bookService book.Service, log *zap.Logger) *AssignAuthorUseCase {
	return &AssignAuthorUseCase{bookService: bookService, log: log}
}

func (uc *AssignAuthorUseCase) Execute(ctx context.Context, bookID, authorID uint) (_ *BookView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "AssignAuthor")
	defer func() { tracing.EndSpan(span, err) }()

	b, err := uc.bookService.AssignAuthor(ctx, bookID, authorID)
	if err != nil {
		return nil, err
	}

	uc.log.Info("作者已关联", zap.Uint("book_id", bookID), zap.Uint("author_id", authorID))
	return toViewPtr(b), nil
}

// AssignGenreUseCase 为图书关联已存在的分类
type AssignGenreUseCase struct {
	bookService book.Service
	log         *zap.Logger
}

func NewAssignGenreUseCase(bookService book.Service, log *zap.Logger) *AssignGenreUseCase {
	return &AssignGenreUseCase{bookService: bookService, log: log}
}

func (uc *AssignGenreUseCase) Execute(ctx context.Context, bookID, genreID uint) (_ *BookView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "AssignGenre")
	defer func() { tracing.EndSpan(span, err) }()

	b, err := uc.bookService.AssignGenre(ctx, bookID, genreID)
	if err != nil {
		return nil, err
	}

	uc.log.Info("分类已关联", zap.Uint("book_id", bookID), zap.Uint("genre_id", genreID))
	return toViewPtr(b), nil
}
