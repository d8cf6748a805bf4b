package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/pkg/actor"
)

func TestAuthorRepository(t *testing.T) {
	repo := NewAuthorRepository(newTestDB(t))
	ctx := actor.WithName(context.Background(), "alice")

	frank := author.NewAuthor("Frank", "Herbert", 1001)
	require.NoError(t, repo.Create(ctx, frank))
	require.NotZero(t, frank.ID)

	t.Run("审计字段来自context", func(t *testing.T) {
		got, err := repo.FindByID(ctx, frank.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.CreatedBy)
		assert.Equal(t, "alice", got.UpdatedBy)
	})

	t.Run("按自然键查找", func(t *testing.T) {
		got, err := repo.FindByNaturalKey(ctx, "Frank", 1001)
		require.NoError(t, err)
		assert.Equal(t, frank.ID, got.ID)

		_, err = repo.FindByNaturalKey(ctx, "Franklin", 1001)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("证件号重复", func(t *testing.T) {
		err := repo.Create(ctx, author.NewAuthor("Other", "", 1001))
		assert.ErrorIs(t, err, author.ErrIdentificationNumberDuplicate)
	})

	t.Run("更新记录修改人", func(t *testing.T) {
		frank.LastName = "P. Herbert"
		require.NoError(t, repo.Update(actor.WithName(ctx, "bob"), frank))

		got, err := repo.FindByID(ctx, frank.ID)
		require.NoError(t, err)
		assert.Equal(t, "P. Herbert", got.LastName)
		assert.Equal(t, "alice", got.CreatedBy)
		assert.Equal(t, "bob", got.UpdatedBy)
	})

	t.Run("分页列表", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, author.NewAuthor("Ursula", "Le Guin", 2002)))

		items, total, err := repo.List(ctx, author.ListParams{Page: 0, PageSize: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 1)
		assert.Equal(t, "Frank", items[0].FirstName)
	})

	t.Run("删除后不存在", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, frank.ID))
		_, err := repo.FindByID(ctx, frank.ID)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})
}
