package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

// Service 图书领域服务
// 负责图书与作者、分类之间的关联一致性：去重、按自然键复用、解除关联
type Service interface {
	// Create 解析draft中的每个作者/分类（查找或创建），去重后一次性持久化
	Create(ctx context.Context, draft Draft) (*Book, error)

	// AssignAuthor 关联已存在的作者，已关联时不做修改
	AssignAuthor(ctx context.Context, bookID, authorID uint) (*Book, error)

	// AssignGenre 关联已存在的分类，已关联时不做修改
	AssignGenre(ctx context.Context, bookID, genreID uint) (*Book, error)

	// Update 全量覆盖标量字段，关联保持不变
	Update(ctx context.Context, id uint, fields Fields) (*Book, error)

	// UpdatePartial 先保存非nil的标量字段，再逐个关联AuthorIDs、GenreIDs
	// 每一步单独持久化，中途失败时之前的步骤不会回滚
	UpdatePartial(ctx context.Context, id uint, partial PartialUpdate) (*Book, error)

	// Delete 删除图书，不存在时什么也不做
	Delete(ctx context.Context, id uint) error

	GetByID(ctx context.Context, id uint) (*Book, error)
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)
	Search(ctx context.Context, key string, params ListParams) ([]*Book, int64, error)

	// DetachAuthor 从所有图书中移除该作者并逐本保存，返回受影响的图书数
	DetachAuthor(ctx context.Context, authorID uint) (int, error)

	// DetachGenre 从所有图书中移除该分类并逐本保存，返回受影响的图书数
	DetachGenre(ctx context.Context, genreID uint) (int, error)
}

type service struct {
	repo          Repository
	authorService author.Service
	genreService  genre.Service
}

// NewService 创建图书领域服务
func NewService(repo Repository, authorService author.Service, genreService genre.Service) Service {
	return &service{
		repo:          repo,
		authorService: authorService,
		genreService:  genreService,
	}
}

func (s *service) Create(ctx context.Context, draft Draft) (*Book, error) {
	// 1. 标量字段
	b := NewBook(draft.Fields)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// 2. 逐个解析作者，同一作者出现多次时集合去重
	for _, candidate := range draft.Authors {
		a, err := s.authorService.Resolve(ctx, candidate)
		if err != nil {
			return nil, err
		}
		b.AddAuthor(a)
	}

	// 3. 逐个解析分类
	for _, candidate := range draft.Genres {
		g, err := s.genreService.Resolve(ctx, candidate)
		if err != nil {
			return nil, err
		}
		b.AddGenre(g)
	}

	// 4. 一次性持久化
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) AssignAuthor(ctx context.Context, bookID, authorID uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	a, err := s.authorService.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if !b.AddAuthor(a) {
		return b, nil
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) AssignGenre(ctx context.Context, bookID, genreID uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	g, err := s.genreService.GetByID(ctx, genreID)
	if err != nil {
		return nil, err
	}

	if !b.AddGenre(g) {
		return b, nil
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id uint, fields Fields) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Replace(fields)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UpdatePartial(ctx context.Context, id uint, partial PartialUpdate) (*Book, error) {
	// 1. 标量字段
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if partial.HasScalars() {
		b.ApplyScalars(partial)
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if err := s.repo.Save(ctx, b); err != nil {
			return nil, err
		}
	}

	// 2. 作者，每个ID一次完整的读-改-写
	for _, authorID := range partial.AuthorIDs {
		if _, err := s.AssignAuthor(ctx, id, authorID); err != nil {
			return nil, err
		}
	}

	// 3. 分类
	for _, genreID := range partial.GenreIDs {
		if _, err := s.AssignGenre(ctx, id, genreID); err != nil {
			return nil, err
		}
	}

	// 4. 返回最终持久化的状态
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Search(ctx context.Context, key string, params ListParams) ([]*Book, int64, error) {
	return s.repo.Search(ctx, key, params)
}

func (s *service) DetachAuthor(ctx context.Context, authorID uint) (int, error) {
	books, err := s.repo.ListByAuthorID(ctx, authorID)
	if err != nil {
		return 0, err
	}

	detached := 0
	for _, b := range books {
		if !b.RemoveAuthor(authorID) {
			continue
		}
		if err := s.repo.Save(ctx, b); err != nil {
			return detached, err
		}
		detached++
	}
	return detached, nil
}

func (s *service) DetachGenre(ctx context.Context, genreID uint) (int, error) {
	books, err := s.repo.ListByGenreID(ctx, genreID)
	if err != nil {
		return 0, err
	}

	detached := 0
	for _, b := range books {
		if !b.RemoveGenre(genreID) {
			continue
		}
		if err := s.repo.Save(ctx, b); err != nil {
			return detached, err
		}
		detached++
	}
	return detached, nil
}
