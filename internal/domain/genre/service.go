package genre

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Service 分类领域服务
type Service interface {
	// Add 直接创建，名称已存在返回ErrGenreAlreadyExists
	Add(ctx context.Context, name string) (*Genre, error)
	// Resolve 按名称查找或创建，已存在时返回已存储的分类
	Resolve(ctx context.Context, candidate *Genre) (*Genre, error)
	GetByID(ctx context.Context, id uint) (*Genre, error)
	Update(ctx context.Context, id uint, name string) (*Genre, error)
	// Delete 只删除分类行，调用前必须已解除所有图书关联
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Genre, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, name string) (*Genre, error) {
	g := NewGenre(name)
	if err := g.Validate(); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByName(ctx, g.Name)
	if err == nil {
		return nil, ErrGenreAlreadyExists
	}
	if !errors.Is(err, ErrGenreNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) Resolve(ctx context.Context, candidate *Genre) (*Genre, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, candidate.Name)
	if err == nil {
		metrics.RecordResolve("genre", false)
		return existing, nil
	}
	if !errors.Is(err, ErrGenreNotFound) {
		return nil, err
	}

	created := NewGenre(candidate.Name)
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	metrics.RecordResolve("genre", true)
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Genre, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, name string) (*Genre, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g.Rename(name)
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Genre, int64, error) {
	return s.repo.List(ctx, params)
}
