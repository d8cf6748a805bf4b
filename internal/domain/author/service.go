package author

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Service 作者领域服务
type Service interface {
	// Add 直接创建作者，自然键已存在返回ErrAuthorAlreadyExists
	Add(ctx context.Context, firstName, lastName string, identificationNumber int64) (*Author, error)

	// Resolve 按自然键查找或创建
	// 已存在时原样返回已存储的作者，candidate的其余字段（如LastName）被丢弃
	Resolve(ctx context.Context, candidate *Author) (*Author, error)

	GetByID(ctx context.Context, id uint) (*Author, error)

	// Update 全量更新标量字段
	Update(ctx context.Context, id uint, firstName, lastName string, identificationNumber int64) (*Author, error)

	// Delete 只删除作者行，调用前必须已解除所有图书关联
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, params ListParams) ([]*Author, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, firstName, lastName string, identificationNumber int64) (*Author, error) {
	a := NewAuthor(firstName, lastName, identificationNumber)
	if err := a.Validate(); err != nil {
		return nil, err
	}

	// 1. 自然键已存在则拒绝
	_, err := s.repo.FindByNaturalKey(ctx, a.FirstName, a.IdentificationNumber)
	if err == nil {
		return nil, ErrAuthorAlreadyExists
	}
	if !errors.Is(err, ErrAuthorNotFound) {
		return nil, err
	}

	// 2. 持久化（证件号与其他作者冲突时由唯一索引拦截）
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Resolve(ctx context.Context, candidate *Author) (*Author, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByNaturalKey(ctx, candidate.FirstName, candidate.IdentificationNumber)
	if err == nil {
		metrics.RecordResolve("author", false)
		return existing, nil
	}
	if !errors.Is(err, ErrAuthorNotFound) {
		return nil, err
	}

	created := NewAuthor(candidate.FirstName, candidate.LastName, candidate.IdentificationNumber)
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	metrics.RecordResolve("author", true)
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, firstName, lastName string, identificationNumber int64) (*Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Replace(firstName, lastName, identificationNumber)
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Author, int64, error) {
	return s.repo.List(ctx, params)
}
