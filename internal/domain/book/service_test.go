package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, b *Book) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*Book, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Save(ctx context.Context, b *Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) List(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*Book), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Search(ctx context.Context, key string, params ListParams) ([]*Book, int64, error) {
	args := m.Called(ctx, key, params)
	return args.Get(0).([]*Book), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) ListByAuthorID(ctx context.Context, authorID uint) ([]*Book, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]*Book), args.Error(1)
}

func (m *mockRepository) ListByGenreID(ctx context.Context, genreID uint) ([]*Book, error) {
	args := m.Called(ctx, genreID)
	return args.Get(0).([]*Book), args.Error(1)
}

// mockAuthorService 只实现图书服务用到的方法
type mockAuthorService struct {
	mock.Mock
	author.Service
}

func (m *mockAuthorService) Resolve(ctx context.Context, candidate *author.Author) (*author.Author, error) {
	args := m.Called(ctx, candidate)
	if a := args.Get(0); a != nil {
		return a.(*author.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthorService) GetByID(ctx context.Context, id uint) (*author.Author, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*author.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGenreService struct {
	mock.Mock
	genre.Service
}

func (m *mockGenreService) Resolve(ctx context.Context, candidate *genre.Genre) (*genre.Genre, error) {
	args := m.Called(ctx, candidate)
	if g := args.Get(0); g != nil {
		return g.(*genre.Genre), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenreService) GetByID(ctx context.Context, id uint) (*genre.Genre, error) {
	args := m.Called(ctx, id)
	if g := args.Get(0); g != nil {
		return g.(*genre.Genre), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService() (Service, *mockRepository, *mockAuthorService, *mockGenreService) {
	repo := new(mockRepository)
	as := new(mockAuthorService)
	gs := new(mockGenreService)
	return NewService(repo, as, gs), repo, as, gs
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("同一作者出现两次只关联一次", func(t *testing.T) {
		svc, repo, as, gs := newTestService()
		frank := &author.Author{ID: 7, FirstName: "Frank", IdentificationNumber: 1001}
		as.On("Resolve", ctx, mock.Anything).Return(frank, nil).Twice()
		sf := &genre.Genre{ID: 3, Name: "Science Fiction"}
		gs.On("Resolve", ctx, mock.Anything).Return(sf, nil).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

		b, err := svc.Create(ctx, Draft{
			Fields:  Fields{Title: "Dune", ISBN: "978-0441013593", Price: "9.99"},
			Authors: []*author.Author{author.NewAuthor("Frank", "Herbert", 1001), author.NewAuthor("Frank", "H.", 1001)},
			Genres:  []*genre.Genre{genre.NewGenre("Science Fiction")},
		})
		require.NoError(t, err)
		assert.Equal(t, []uint{7}, b.AuthorIDs())
		assert.Equal(t, []uint{3}, b.GenreIDs())
		repo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("标量字段非法时不解析关联", func(t *testing.T) {
		svc, repo, as, _ := newTestService()

		_, err := svc.Create(ctx, Draft{Fields: Fields{Title: "Dune", ISBN: "x", Price: "-1"}})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		as.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("解析失败时不持久化", func(t *testing.T) {
		svc, repo, as, _ := newTestService()
		as.On("Resolve", ctx, mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.Create(ctx, Draft{
			Fields:  Fields{Title: "Dune", ISBN: "x", Price: "1"},
			Authors: []*author.Author{author.NewAuthor("Frank", "", 1)},
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_AssignAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("已关联时不保存", func(t *testing.T) {
		svc, repo, as, _ := newTestService()
		a := &author.Author{ID: 7}
		repo.On("FindByID", ctx, uint(1)).Return(&Book{ID: 1, Authors: []*author.Author{a}}, nil)
		as.On("GetByID", ctx, uint(7)).Return(a, nil)

		b, err := svc.AssignAuthor(ctx, 1, 7)
		require.NoError(t, err)
		assert.Len(t, b.Authors, 1)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("新关联", func(t *testing.T) {
		svc, repo, as, _ := newTestService()
		repo.On("FindByID", ctx, uint(1)).Return(&Book{ID: 1}, nil)
		as.On("GetByID", ctx, uint(8)).Return(&author.Author{ID: 8}, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

		b, err := svc.AssignAuthor(ctx, 1, 8)
		require.NoError(t, err)
		assert.Equal(t, []uint{8}, b.AuthorIDs())
	})

	t.Run("作者不存在", func(t *testing.T) {
		svc, repo, as, _ := newTestService()
		repo.On("FindByID", ctx, uint(1)).Return(&Book{ID: 1}, nil)
		as.On("GetByID", ctx, uint(99999)).Return(nil, author.ErrAuthorNotFound)

		_, err := svc.AssignAuthor(ctx, 1, 99999)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByID", ctx, uint(99999)).Return(nil, ErrBookNotFound)

		_, err := svc.AssignAuthor(ctx, 99999, 1)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestService_AssignGenre(t *testing.T) {
	ctx := context.Background()

	svc, repo, _, gs := newTestService()
	g := &genre.Genre{ID: 3}
	repo.On("FindByID", ctx, uint(1)).Return(&Book{ID: 1, Genres: []*genre.Genre{g}}, nil)
	gs.On("GetByID", ctx, uint(3)).Return(g, nil)

	b, err := svc.AssignGenre(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, b.Genres, 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	svc, repo, _, _ := newTestService()
	a := &author.Author{ID: 7}
	repo.On("FindByID", ctx, uint(1)).Return(&Book{ID: 1, Title: "Old", ISBN: "1", Price: "1", Authors: []*author.Author{a}}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

	b, err := svc.Update(ctx, 1, Fields{Title: "New", ISBN: "2", Price: "2.50"})
	require.NoError(t, err)
	assert.Equal(t, "New", b.Title)
	assert.Nil(t, b.WrittenDate)
	assert.Equal(t, []uint{7}, b.AuthorIDs())
}

func TestService_UpdatePartial(t *testing.T) {
	ctx := context.Background()

	t.Run("只改价格其余字段保持不变", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		stored := &Book{ID: 1, Title: "Dune", ISBN: "978", Price: "9.99"}
		repo.On("FindByID", ctx, uint(1)).Return(stored, nil)
		repo.On("Save", ctx, stored).Return(nil).Once()

		b, err := svc.UpdatePartial(ctx, 1, PartialUpdate{Price: strPtr("12.50")})
		require.NoError(t, err)
		assert.Equal(t, "Dune", b.Title)
		assert.Equal(t, "978", b.ISBN)
		assert.Equal(t, "12.50", b.Price)
	})

	t.Run("只追加关联时不保存标量", func(t *testing.T) {
		svc, repo, as, _ := newTestService()
		repo.On("FindByID", ctx, uint(1)).Return(&Book{ID: 1, Title: "Dune", ISBN: "978", Price: "1"}, nil)
		as.On("GetByID", ctx, uint(8)).Return(&author.Author{ID: 8}, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*book.Book")).Return(nil).Once()

		_, err := svc.UpdatePartial(ctx, 1, PartialUpdate{AuthorIDs: []uint{8}})
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("分类不存在时已保存的步骤保留", func(t *testing.T) {
		svc, repo, _, gs := newTestService()
		repo.On("FindByID", ctx, uint(1)).Return(&Book{ID: 1, Title: "Dune", ISBN: "978", Price: "1"}, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*book.Book")).Return(nil)
		gs.On("GetByID", ctx, uint(99999)).Return(nil, genre.ErrGenreNotFound)

		_, err := svc.UpdatePartial(ctx, 1, PartialUpdate{Title: strPtr("Dune Messiah"), GenreIDs: []uint{99999}})
		assert.ErrorIs(t, err, genre.ErrGenreNotFound)
		repo.AssertNumberOfCalls(t, "Save", 1)
	})
}

func TestService_DetachAuthor(t *testing.T) {
	ctx := context.Background()

	svc, repo, _, _ := newTestService()
	x := &author.Author{ID: 7}
	y := &author.Author{ID: 8}
	books := []*Book{
		{ID: 1, Authors: []*author.Author{x}},
		{ID: 2, Authors: []*author.Author{x, y}},
	}
	repo.On("ListByAuthorID", ctx, uint(7)).Return(books, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

	n, err := svc.DetachAuthor(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, books[0].Authors)
	assert.Equal(t, []uint{8}, books[1].AuthorIDs())
}

func TestService_DetachGenre(t *testing.T) {
	ctx := context.Background()

	t.Run("保存失败时返回已处理的数量", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		g := &genre.Genre{ID: 3}
		books := []*Book{{ID: 1, Genres: []*genre.Genre{g}}, {ID: 2, Genres: []*genre.Genre{g}}}
		repo.On("ListByGenreID", ctx, uint(3)).Return(books, nil)
		repo.On("Save", ctx, books[0]).Return(nil)
		repo.On("Save", ctx, books[1]).Return(errors.New("db down"))

		n, err := svc.DetachGenre(ctx, 3)
		assert.Error(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("没有关联的图书", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("ListByGenreID", ctx, uint(4)).Return([]*Book{}, nil)

		n, err := svc.DetachGenre(ctx, 4)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
