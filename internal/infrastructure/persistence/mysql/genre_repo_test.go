package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/pkg/actor"
)

func TestGenreRepository(t *testing.T) {
	repo := NewGenreRepository(newTestDB(t))
	ctx := context.Background()

	sf := genre.NewGenre("Science Fiction")
	require.NoError(t, repo.Create(ctx, sf))
	assert.Equal(t, actor.System, sf.CreatedBy)

	t.Run("名称唯一", func(t *testing.T) {
		err := repo.Create(ctx, genre.NewGenre("Science Fiction"))
		assert.ErrorIs(t, err, genre.ErrGenreNameDuplicate)
	})

	t.Run("按名称查找", func(t *testing.T) {
		got, err := repo.FindByName(ctx, "Science Fiction")
		require.NoError(t, err)
		assert.Equal(t, sf.ID, got.ID)

		_, err = repo.FindByName(ctx, "Poetry")
		assert.ErrorIs(t, err, genre.ErrGenreNotFound)
	})

	t.Run("改名冲突", func(t *testing.T) {
		poetry := genre.NewGenre("Poetry")
		require.NoError(t, repo.Create(ctx, poetry))

		poetry.Rename("Science Fiction")
		assert.ErrorIs(t, repo.Update(ctx, poetry), genre.ErrGenreNameDuplicate)
	})

	t.Run("删除不存在的分类", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, 99999))
	})
}
