package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// DeleteBookUseCase 删除图书及其关联行，不存在时什么也不做
type DeleteBookUseCase struct {
	bookService book.Service
	log         *zap.Logger
}

func NewDeleteBookUseCase(bookService book.Service, log *zap.Logger) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, log: log}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookService.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info("图书已删除", zap.Uint("book_id", id))
	return nil
}
