package repository

import (
	"context"
	"testing"
	"time"

	"carrotgamba/domain/entities"
	"carrotgamba/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("get missing account returns nil, nil", func(t *testing.T) {
		account, err := repo.GetByUser(ctx, 111, 222)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("create and get roundtrip", func(t *testing.T) {
		created, err := repo.Create(ctx, 111, 222, "carrot_enjoyer", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), created.Balance)
		assert.Equal(t, 1, created.Level)

		account, err := repo.GetByUser(ctx, 111, 222)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "carrot_enjoyer", account.Username)
		assert.Equal(t, int64(1000), account.Balance)
		assert.Equal(t, 1, account.Level)
		assert.Equal(t, int64(0), account.XP)
		assert.Nil(t, account.LastDailyClaim)
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		_, err := repo.Create(ctx, 111, 222, "carrot_enjoyer", 1000)
		assert.Error(t, err)
	})

	t.Run("same user in another guild is a separate account", func(t *testing.T) {
		_, err := repo.Create(ctx, 111, 333, "carrot_enjoyer", 500)
		require.NoError(t, err)

		account, err := repo.GetByUser(ctx, 111, 333)
		require.NoError(t, err)
		assert.Equal(t, int64(500), account.Balance)
	})
}

func TestAccountRepository_ApplyBalanceDelta(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, 2, "bun", 1000)
	require.NoError(t, err)

	t.Run("credit", func(t *testing.T) {
		newBalance, err := repo.ApplyBalanceDelta(ctx, 1, 2, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), newBalance)
	})

	t.Run("debit", func(t *testing.T) {
		newBalance, err := repo.ApplyBalanceDelta(ctx, 1, 2, -1500)
		require.NoError(t, err)
		assert.Equal(t, int64(0), newBalance)
	})

	t.Run("overdraw is rejected and leaves the balance untouched", func(t *testing.T) {
		_, err := repo.ApplyBalanceDelta(ctx, 1, 2, -1)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

		account, err := repo.GetByUser(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := repo.ApplyBalanceDelta(ctx, 99, 2, 100)
		assert.ErrorIs(t, err, entities.ErrAccountNotFound)
	})

	t.Run("concurrent deltas never overdraw", func(t *testing.T) {
		_, err := repo.Create(ctx, 7, 2, "racer", 100)
		require.NoError(t, err)

		// 10 workers each try to take 30; only 3 debits can fit in 100.
		results := make(chan error, 10)
		for i := 0; i < 10; i++ {
			go func() {
				_, err := repo.ApplyBalanceDelta(ctx, 7, 2, -30)
				results <- err
			}()
		}

		succeeded := 0
		for i := 0; i < 10; i++ {
			if err := <-results; err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
			}
		}
		assert.Equal(t, 3, succeeded)

		account, err := repo.GetByUser(ctx, 7, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(10), account.Balance)
	})
}

func TestAccountRepository_Progression(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, 2, "bun", 1000)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProgression(ctx, 1, 2, 3, 42))
	require.NoError(t, repo.ApplyPassiveGain(ctx, 1, 2, 10))
	require.NoError(t, repo.ApplyPassiveGain(ctx, 1, 2, 10))

	account, err := repo.GetByUser(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, account.Level)
	assert.Equal(t, int64(42), account.XP)
	assert.Equal(t, 20, account.PassiveMultiplierPercent)

	assert.ErrorIs(t, repo.UpdateProgression(ctx, 99, 2, 2, 0), entities.ErrAccountNotFound)
	assert.ErrorIs(t, repo.ApplyPassiveGain(ctx, 99, 2, 10), entities.ErrAccountNotFound)
}

func TestAccountRepository_SetClaimTime(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, 2, "bun", 1000)
	require.NoError(t, err)

	claimedAt := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.SetClaimTime(ctx, 1, 2, entities.TransactionTypeDailyClaim, claimedAt))

	account, err := repo.GetByUser(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, account.LastDailyClaim)
	assert.WithinDuration(t, claimedAt, *account.LastDailyClaim, time.Second)
	assert.Nil(t, account.LastWeeklyClaim)

	t.Run("rejects non-claim transaction types", func(t *testing.T) {
		err := repo.SetClaimTime(ctx, 1, 2, entities.TransactionTypeWagerWin, claimedAt)
		assert.Error(t, err)
	})
}

func TestAccountRepository_GetTopByBalance(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	for i, balance := range []int64{100, 5000, 300} {
		_, err := repo.Create(ctx, int64(i+1), 2, "user", balance)
		require.NoError(t, err)
	}
	// Another guild must not leak into the leaderboard.
	_, err := repo.Create(ctx, 9, 3, "outsider", 99999)
	require.NoError(t, err)

	top, err := repo.GetTopByBalance(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(5000), top[0].Balance)
	assert.Equal(t, int64(300), top[1].Balance)
}
