package author

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// DeleteAuthorUseCase 删除作者
// 先从所有关联图书中移除该作者（逐本保存），再删除作者行；不在事务中执行
type DeleteAuthorUseCase struct {
	authorService author.Service
	bookService   book.Service
	log           *zap.Logger
}

func NewDeleteAuthorUseCase(authorService author.Service, bookService book.Service, log *zap.Logger) *DeleteAuthorUseCase {
	return &DeleteAuthorUseCase{
		authorService: authorService,
		bookService:   bookService,
		log:           log,
	}
}

// Execute 作者不存在时什么也不做
func (uc *DeleteAuthorUseCase) Execute(ctx context.Context, id uint) error {
	uc.log.Debug("删除作者", zap.Uint("author_id", id))

	// 1. 确认存在
	if _, err := uc.authorService.GetByID(ctx, id); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil
		}
		return err
	}

	// 2. 解除关联
	detached, err := uc.bookService.DetachAuthor(ctx, id)
	metrics.RecordDetached("author", detached)
	if err != nil {
		uc.log.Warn("解除作者关联中断", zap.Uint("author_id", id), zap.Int("detached", detached), zap.Error(err))
		return err
	}

	// 3. 删除作者行
	if err := uc.authorService.Delete(ctx, id); err != nil {
		return err
	}

	uc.log.Info("作者已删除", zap.Uint("author_id", id), zap.Int("detached_books", detached))
	return nil
}
