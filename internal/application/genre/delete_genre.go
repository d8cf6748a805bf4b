package genre

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// DeleteGenreUseCase 删除分类：先解除所有图书关联，再删除分类行
type DeleteGenreUseCase struct {
	genreService genre.Service
	bookService  book.Service
	log          *zap.Logger
}

func NewDeleteGenreUseCase(genreService genre.Service, bookService book.Service, log *zap.Logger) *DeleteGenreUseCase {
	return &DeleteGenreUseCase{
		genreService: genreService,
		bookService:  bookService,
		log:          log,
	}
}

func (uc *DeleteGenreUseCase) Execute(ctx context.Context, id uint) error {
	if _, err := uc.genreService.GetByID(ctx, id); err != nil {
		if errors.Is(err, genre.ErrGenreNotFound) {
			return nil
		}
		return err
	}

	detached, err := uc.bookService.DetachGenre(ctx, id)
	metrics.RecordDetached("genre", detached)
	if err != nil {
		uc.log.Warn("解除分类关联中断", zap.Uint("genre_id", id), zap.Int("detached", detached), zap.Error(err))
		return err
	}

	if err := uc.genreService.Delete(ctx, id); err != nil {
		return err
	}

	uc.log.Info("分类已删除", zap.Uint("genre_id", id), zap.Int("detached_books", detached))
	return nil
}
