package repository

import (
	"context"
	"testing"

	"carrotgamba/domain/entities"
	"carrotgamba/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	t.Run("record assigns id and timestamp", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(1, 2, entities.TransactionTypeWagerWin)
		require.NoError(t, repo.Record(ctx, history))
		assert.NotZero(t, history.ID)
		assert.False(t, history.CreatedAt.IsZero())
	})

	t.Run("metadata roundtrips through jsonb", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(5, 2, entities.TransactionTypeWagerLoss)
		history.TransactionMetadata = map[string]any{
			"game":       "blackjack",
			"bet_amount": float64(100),
		}
		require.NoError(t, repo.Record(ctx, history))

		entries, err := repo.GetByUser(ctx, 5, 2, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, history.TransactionMetadata, entries[0].TransactionMetadata)
	})

	t.Run("nil metadata is preserved", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(6, 2, entities.TransactionTypeDailyClaim)
		require.NoError(t, repo.Record(ctx, history))

		entries, err := repo.GetByUser(ctx, 6, 2, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Nil(t, entries[0].TransactionMetadata)
	})

	t.Run("newest first with limit", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			history := testutil.CreateTestBalanceHistory(7, 2, entities.TransactionTypeWagerWin)
			history.ChangeAmount = int64(i)
			require.NoError(t, repo.Record(ctx, history))
		}

		entries, err := repo.GetByUser(ctx, 7, 2, 3)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, int64(4), entries[0].ChangeAmount)
		assert.Equal(t, int64(2), entries[2].ChangeAmount)
	})
}
