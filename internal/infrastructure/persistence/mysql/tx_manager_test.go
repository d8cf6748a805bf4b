package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

func TestTxManager_Transaction(t *testing.T) {
	db := newTestDB(t)
	txm := NewTxManager(db)
	authors := NewAuthorRepository(db)
	genres := NewGenreRepository(db)
	ctx := context.Background()

	t.Run("返回错误时回滚", func(t *testing.T) {
		err := txm.Transaction(ctx, func(ctx context.Context) error {
			require.NoError(t, authors.Create(ctx, author.NewAuthor("Frank", "Herbert", 1001)))
			return errors.New("abort")
		})
		require.Error(t, err)

		_, err = authors.FindByNaturalKey(ctx, "Frank", 1001)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("成功时提交", func(t *testing.T) {
		err := txm.Transaction(ctx, func(ctx context.Context) error {
			return genres.Create(ctx, genre.NewGenre("Poetry"))
		})
		require.NoError(t, err)

		_, err = genres.FindByName(ctx, "Poetry")
		assert.NoError(t, err)
	})
}
