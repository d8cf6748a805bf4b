package genre

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/pagination"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

// AddGenreUseCase 直接创建分类，名称已存在返回ErrGenreAlreadyExists
type AddGenreUseCase struct {
	genreService genre.Service
	log          *zap.Logger
}

func NewAddGenreUseCase(genreService genre.Service, log *zap.Logger) *AddGenreUseCase {
	return &AddGenreUseCase{genreService: genreService, log: log}
}

func (uc *AddGenreUseCase) Execute(ctx context.Context, name string) (*GenreView, error) {
	uc.log.Debug("添加分类", zap.String("name", name))

	g, err := uc.genreService.Add(ctx, name)
	if err != nil {
		return nil, err
	}

	uc.log.Info("分类已创建", zap.Uint("genre_id", g.ID))
	view := ToView(g)
	return &view, nil
}

type GetGenreUseCase struct {
	genreService genre.Service
}

func NewGetGenreUseCase(genreService genre.Service) *GetGenreUseCase {
	return &GetGenreUseCase{genreService: genreService}
}

func (uc *GetGenreUseCase) Execute(ctx context.Context, id uint) (*GenreView, error) {
	g, err := uc.genreService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := ToView(g)
	return &view, nil
}

// UpdateGenreUseCase 修改分类名称
type UpdateGenreUseCase struct {
	genreService genre.Service
	log          *zap.Logger
}

func NewUpdateGenreUseCase(genreService genre.Service, log *zap.Logger) *UpdateGenreUseCase {
	return &UpdateGenreUseCase{genreService: genreService, log: log}
}

func (uc *UpdateGenreUseCase) Execute(ctx context.Context, id uint, name string) (*GenreView, error) {
	g, err := uc.genreService.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}

	uc.log.Info("分类已更新", zap.Uint("genre_id", id), zap.String("name", g.Name))
	view := ToView(g)
	return &view, nil
}

type ListGenresUseCase struct {
	genreService genre.Service
}

func NewListGenresUseCase(genreService genre.Service) *ListGenresUseCase {
	return &ListGenresUseCase{genreService: genreService}
}

func (uc *ListGenresUseCase) Execute(ctx context.Context, page, size int) (*pagination.Result[GenreView], error) {
	page, size = pagination.Normalize(page, size)

	genres, total, err := uc.genreService.List(ctx, genre.ListParams{Page: page, PageSize: size})
	if err != nil {
		return nil, err
	}

	views := lo.Map(genres, func(g *genre.Genre, _ int) GenreView { return ToView(g) })
	return pagination.NewResult(views, total, page, size), nil
}
