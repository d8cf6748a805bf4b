package genre

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql/mysqltest"
)

func TestDeleteGenreUseCase(t *testing.T) {
	db := mysqltest.NewDB(t)
	ctx := context.Background()

	authorService := author.NewService(mysql.NewAuthorRepository(db))
	genreService := genre.NewService(mysql.NewGenreRepository(db))
	bookService := book.NewService(mysql.NewBookRepository(db), authorService, genreService)
	uc := NewDeleteGenreUseCase(genreService, bookService, zap.NewNop())

	dune, err := bookService.Create(ctx, book.Draft{
		Fields: book.Fields{Title: "Dune", ISBN: "isbn-1", Price: "9.99"},
		Genres: []*genre.Genre{genre.NewGenre("Science Fiction"), genre.NewGenre("Classic")},
	})
	require.NoError(t, err)

	scifi := dune.Genres[0]
	require.Equal(t, "Science Fiction", scifi.Name)

	t.Run("先解除关联再删除分类", func(t *testing.T) {
		require.NoError(t, uc.Execute(ctx, scifi.ID))

		_, err := genreService.GetByID(ctx, scifi.ID)
		assert.ErrorIs(t, err, genre.ErrGenreNotFound)

		got, err := bookService.GetByID(ctx, dune.ID)
		require.NoError(t, err)
		require.Len(t, got.Genres, 1)
		assert.Equal(t, "Classic", got.Genres[0].Name)
	})

	t.Run("分类不存在", func(t *testing.T) {
		assert.NoError(t, uc.Execute(ctx, 99999))
	})
}

func TestManageGenreUseCases(t *testing.T) {
	db := mysqltest.NewDB(t)
	ctx := context.Background()
	genreService := genre.NewService(mysql.NewGenreRepository(db))

	add := NewAddGenreUseCase(genreService, zap.NewNop())
	get := NewGetGenreUseCase(genreService)
	update := NewUpdateGenreUseCase(genreService, zap.NewNop())

	created, err := add.Execute(ctx, "Fantasy")
	require.NoError(t, err)

	_, err = add.Execute(ctx, "Fantasy")
	assert.ErrorIs(t, err, genre.ErrGenreAlreadyExists)

	_, err = update.Execute(ctx, created.ID, "High Fantasy")
	require.NoError(t, err)

	got, err := get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "High Fantasy", got.Name)

	_, err = get.Execute(ctx, 99999)
	assert.ErrorIs(t, err, genre.ErrGenreNotFound)
}
