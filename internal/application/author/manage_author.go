package author

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/pagination"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
)

// AuthorRequest 创建/全量更新作者
type AuthorRequest struct {
	FirstName            string
	LastName             string
	IdentificationNumber int64
}

// AddAuthorUseCase 直接创建作者
type AddAuthorUseCase struct {
	authorService author.Service
	log           *zap.Logger
}

func NewAddAuthorUseCase(authorService author.Service, log *zap.Logger) *AddAuthorUseCase {
	return &AddAuthorUseCase{authorService: authorService, log: log}
}

// Execute 自然键已存在返回ErrAuthorAlreadyExists
func (uc *AddAuthorUseCase) Execute(ctx context.Context, req AuthorRequest) (*AuthorView, error) {
	uc.log.Debug("添加作者", zap.String("first_name", req.FirstName), zap.Int64("identification_number", req.IdentificationNumber))

	a, err := uc.authorService.Add(ctx, req.FirstName, req.LastName, req.IdentificationNumber)
	if err != nil {
		return nil, err
	}

	uc.log.Info("作者已创建", zap.Uint("author_id", a.ID))
	view := ToView(a)
	return &view, nil
}

// GetAuthorUseCase 查询作者
type GetAuthorUseCase struct {
	authorService author.Service
}

func NewGetAuthorUseCase(authorService author.Service) *GetAuthorUseCase {
	return &GetAuthorUseCase{authorService: authorService}
}

func (uc *GetAuthorUseCase) Execute(ctx context.Context, id uint) (*AuthorView, error) {
	a, err := uc.authorService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := ToView(a)
	return &view, nil
}

// UpdateAuthorUseCase 全量更新作者标量字段
type UpdateAuthorUseCase struct {
	authorService author.Service
	log           *zap.Logger
}

func NewUpdateAuthorUseCase(authorService author.Service, log *zap.Logger) *UpdateAuthorUseCase {
	return &UpdateAuthorUseCase{authorService: authorService, log: log}
}

func (uc *UpdateAuthorUseCase) Execute(ctx context.Context, id uint, req AuthorRequest) (*AuthorView, error) {
	uc.log.Debug("更新作者", zap.Uint("author_id", id))

	a, err := uc.authorService.Update(ctx, id, req.FirstName, req.LastName, req.IdentificationNumber)
	if err != nil {
		return nil, err
	}

	uc.log.Info("作者已更新", zap.Uint("author_id", id))
	view := ToView(a)
	return &view, nil
}

// ListAuthorsUseCase 分页查询作者
type ListAuthorsUseCase struct {
	authorService author.Service
}

func NewListAuthorsUseCase(authorService author.Service) *ListAuthorsUseCase {
	return &ListAuthorsUseCase{authorService: authorService}
}

func (uc *ListAuthorsUseCase) Execute(ctx context.Context, page, size int) (*pagination.Result[AuthorView], error) {
	page, size = pagination.Normalize(page, size)

	authors, total, err := uc.authorService.List(ctx, author.ListParams{Page: page, PageSize: size})
	if err != nil {
		return nil, err
	}

	views := lo.Map(authors, func(a *author.Author, _ int) AuthorView { return ToView(a) })
	return pagination.NewResult(views, total, page, size), nil
}
