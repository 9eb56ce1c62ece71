package repository

import (
	"context"
	"testing"

	"carrotgamba/domain/entities"
	"carrotgamba/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewInventoryRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty inventory", func(t *testing.T) {
		items, err := repo.ListItems(ctx, 1, 2)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("add accumulates quantity", func(t *testing.T) {
		require.NoError(t, repo.AddItems(ctx, 1, 2, entities.ItemSecondChance, 2))
		require.NoError(t, repo.AddItems(ctx, 1, 2, entities.ItemSecondChance, 3))
		require.NoError(t, repo.AddItems(ctx, 1, 2, "c1", 1))

		items, err := repo.ListItems(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "c1", items[0].ItemKey)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, entities.ItemSecondChance, items[1].ItemKey)
		assert.Equal(t, 5, items[1].Quantity)
	})

	t.Run("remove consumes quantity", func(t *testing.T) {
		require.NoError(t, repo.RemoveItems(ctx, 1, 2, entities.ItemSecondChance, 4))

		items, err := repo.ListItems(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[1].Quantity)
	})

	t.Run("remove below zero is rejected", func(t *testing.T) {
		err := repo.RemoveItems(ctx, 1, 2, entities.ItemSecondChance, 2)
		assert.ErrorIs(t, err, entities.ErrItemNotOwned)
	})

	t.Run("remove item never owned is rejected", func(t *testing.T) {
		err := repo.RemoveItems(ctx, 1, 2, entities.ItemJackpotJuice, 1)
		assert.ErrorIs(t, err, entities.ErrItemNotOwned)
	})

	t.Run("fully consumed items drop out of the listing", func(t *testing.T) {
		require.NoError(t, repo.RemoveItems(ctx, 1, 2, entities.ItemSecondChance, 1))

		items, err := repo.ListItems(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "c1", items[0].ItemKey)
	})

	t.Run("non-positive quantities are rejected", func(t *testing.T) {
		assert.Error(t, repo.AddItems(ctx, 1, 2, "c1", 0))
		assert.Error(t, repo.RemoveItems(ctx, 1, 2, "c1", -1))
	})
}
