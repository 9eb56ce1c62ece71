package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carrotgamba/domain/entities"
	"carrotgamba/domain/interfaces"
	"carrotgamba/domain/testhelpers"
)

type wagerFixture struct {
	svc            interfaces.WagerService
	accountRepo    *testhelpers.MockAccountRepository
	inventoryRepo  *testhelpers.MockInventoryRepository
	historyRepo    *testhelpers.MockGameHistoryRepository
	balanceRepo    *testhelpers.MockBalanceHistoryRepository
	eventPublisher *testhelpers.MockEventPublisher
	activeItems    *ActiveItemRegistry
}

func newWagerFixture(rng RandomSource, timeout time.Duration) *wagerFixture {
	f := &wagerFixture{
		accountRepo:    new(testhelpers.MockAccountRepository),
		inventoryRepo:  new(testhelpers.MockInventoryRepository),
		historyRepo:    new(testhelpers.MockGameHistoryRepository),
		balanceRepo:    new(testhelpers.MockBalanceHistoryRepository),
		eventPublisher: new(testhelpers.MockEventPublisher),
		activeItems:    NewActiveItemRegistry(),
	}
	catalog := entities.NewCatalog()
	f.svc = NewWagerService(
		NewGameRegistry(rng),
		NewItemPipeline(),
		NewProgression(catalog),
		f.activeItems,
		NewUserLocks(),
		f.accountRepo,
		f.inventoryRepo,
		f.historyRepo,
		f.balanceRepo,
		f.eventPublisher,
		timeout,
	)
	return f
}

func (f *wagerFixture) allowRecording() {
	f.historyRepo.On("RecordGameResult", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.balanceRepo.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.eventPublisher.On("Publish", mock.Anything).Return(nil).Maybe()
}

func testAccount(balance int64) *entities.Account {
	return &entities.Account{
		DiscordID: 123,
		GuildID:   456,
		Username:  "tester",
		Balance:   balance,
		Level:     1,
	}
}

func TestWagerService_StartWagerValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown game", func(t *testing.T) {
		t.Parallel()
		f := newWagerFixture(NewSeededRandomSource(1), time.Minute)
		_, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: "roulette"}, nil)
		assert.ErrorIs(t, err, entities.ErrUnknownGame)
	})

	t.Run("bet below minimum", func(t *testing.T) {
		t.Parallel()
		f := newWagerFixture(NewSeededRandomSource(1), time.Minute)
		_, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 5, GameKey: GameKeyCoinToss}, nil)
		assert.Error(t, err)
		f.accountRepo.AssertNotCalled(t, "GetByUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("account not found", func(t *testing.T) {
		t.Parallel()
		f := newWagerFixture(NewSeededRandomSource(1), time.Minute)
		f.accountRepo.On("GetByUser", ctx, int64(123), int64(456)).Return(nil, nil)
		_, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyCoinToss}, nil)
		assert.ErrorIs(t, err, entities.ErrAccountNotFound)
	})

	t.Run("insufficient funds rejected before play", func(t *testing.T) {
		t.Parallel()
		f := newWagerFixture(NewSeededRandomSource(1), time.Minute)
		f.accountRepo.On("GetByUser", ctx, int64(123), int64(456)).Return(testAccount(50), nil)
		_, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyCoinToss}, nil)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
		f.accountRepo.AssertNotCalled(t, "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWagerService_CoinTossWinSettles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newWagerFixture(&scriptedRandom{floats: []float64{0.9}}, time.Minute)
	f.allowRecording()
	f.accountRepo.On("GetByUser", ctx, int64(123), int64(456)).Return(testAccount(1000), nil)
	f.accountRepo.On("ApplyBalanceDelta", ctx, int64(123), int64(456), int64(100)).Return(int64(1100), nil)
	f.accountRepo.On("UpdateProgression", ctx, int64(123), int64(456), 1, mock.Anything).Return(nil)

	update, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyCoinToss}, nil)
	require.NoError(t, err)
	require.NotNil(t, update.Settlement)
	assert.False(t, update.Pending)

	settlement := update.Settlement
	assert.Equal(t, entities.ResultWin, settlement.Outcome.Result)
	assert.Equal(t, int64(1100), settlement.NewBalance)
	assert.Greater(t, settlement.XPGained, int64(0))
	require.NotNil(t, settlement.LevelUp)
	assert.False(t, settlement.LevelUp.LeveledUp(), "level 1 soft cap keeps a single win below the requirement")

	f.accountRepo.AssertExpectations(t)
}

func TestWagerService_SecondWagerWhileSessionLive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newWagerFixture(NewSeededRandomSource(5), time.Minute)
	f.accountRepo.On("GetByUser", ctx, int64(123), int64(456)).Return(testAccount(1000), nil)

	update, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyMines}, nil)
	require.NoError(t, err)
	assert.True(t, update.Pending)
	assert.NotEmpty(t, update.SessionID)

	_, err = f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyCoinToss}, nil)
	assert.ErrorIs(t, err, entities.ErrWagerInProgress)
}

func TestWagerService_AdvanceWithoutSession(t *testing.T) {
	t.Parallel()

	f := newWagerFixture(NewSeededRandomSource(1), time.Minute)
	_, err := f.svc.AdvanceWager(context.Background(), 123, 456, entities.GameInput{Action: entities.ActionHit})
	assert.ErrorIs(t, err, entities.ErrNoSession)
}

func TestWagerService_MinesSessionToLoss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Mine placed at cell 0.
	f := newWagerFixture(&scriptedRandom{ints: []int{0}}, time.Minute)
	f.allowRecording()
	f.accountRepo.On("GetByUser", ctx, int64(123), int64(456)).Return(testAccount(1000), nil)
	f.accountRepo.On("ApplyBalanceDelta", ctx, int64(123), int64(456), int64(-100)).Return(int64(900), nil)
	f.accountRepo.On("UpdateProgression", ctx, int64(123), int64(456), 1, mock.Anything).Return(nil)

	update, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyMines}, nil)
	require.NoError(t, err)
	require.True(t, update.Pending)

	update, err = f.svc.AdvanceWager(ctx, 123, 456, entities.GameInput{Action: entities.ActionSelectMines, Value: 1})
	require.NoError(t, err)
	require.True(t, update.Pending)

	update, err = f.svc.AdvanceWager(ctx, 123, 456, entities.GameInput{Action: entities.ActionReveal, Value: 0})
	require.NoError(t, err)
	require.NotNil(t, update.Settlement)
	assert.Equal(t, entities.ResultLoss, update.Settlement.Outcome.Result)
	assert.Equal(t, int64(900), update.Settlement.NewBalance)

	// The session is gone.
	_, err = f.svc.AdvanceWager(ctx, 123, 456, entities.GameInput{Action: entities.ActionCashout})
	assert.ErrorIs(t, err, entities.ErrNoSession)
}

func TestWagerService_SessionTimeoutReturnsStake(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newWagerFixture(NewSeededRandomSource(5), 20*time.Millisecond)
	f.allowRecording()
	f.accountRepo.On("GetByUser", mock.Anything, int64(123), int64(456)).Return(testAccount(1000), nil)

	done := make(chan *entities.WagerUpdate, 1)
	f.svc.OnTimeout(func(discordID, guildID int64, update *entities.WagerUpdate) {
		done <- update
	})

	_, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyMines}, nil)
	require.NoError(t, err)

	select {
	case update := <-done:
		require.NotNil(t, update.Settlement)
		assert.Equal(t, entities.ResultTimeout, update.Settlement.Outcome.Result)
		assert.Equal(t, int64(0), update.Settlement.Outcome.RawPayout)
		assert.Equal(t, int64(1000), update.Settlement.NewBalance, "stake returned, balance untouched")
		assert.Zero(t, update.Settlement.XPGained)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout callback never fired")
	}

	// No balance movement happened.
	f.accountRepo.AssertNotCalled(t, "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// The key is released: a new wager can start.
	_, err = f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyMines}, nil)
	assert.NoError(t, err)
}

func TestWagerService_TimeoutSkipsItemConsumption(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newWagerFixture(NewSeededRandomSource(5), 20*time.Millisecond)
	f.allowRecording()
	f.accountRepo.On("GetByUser", mock.Anything, int64(123), int64(456)).Return(testAccount(1000), nil)

	active := f.activeItems.Get(123, 456)
	require.NoError(t, active.Activate(entities.ItemSecondChance, 1))
	require.NoError(t, active.Activate(entities.ItemJackpotJuice, 1))

	done := make(chan struct{})
	f.svc.OnTimeout(func(discordID, guildID int64, update *entities.WagerUpdate) {
		close(done)
	})

	_, err := f.svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyMines}, nil)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout callback never fired")
	}

	assert.True(t, active.Has(entities.ItemSecondChance))
	assert.True(t, active.Has(entities.ItemJackpotJuice))
}

// fakeAccountRepo is an in-memory account store with the repository's
// atomic-delta contract, for concurrency tests.
type fakeAccountRepo struct {
	mu      sync.Mutex
	account entities.Account
	applied int64
}

func (r *fakeAccountRepo) GetByUser(ctx context.Context, discordID, guildID int64) (*entities.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := r.account
	return &copy, nil
}

func (r *fakeAccountRepo) Create(ctx context.Context, discordID, guildID int64, username string, initialBalance int64) (*entities.Account, error) {
	return nil, nil
}

func (r *fakeAccountRepo) ApplyBalanceDelta(ctx context.Context, discordID, guildID int64, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.account.Balance+delta < 0 {
		return 0, entities.ErrInsufficientFunds
	}
	r.account.Balance += delta
	r.applied += delta
	return r.account.Balance, nil
}

func (r *fakeAccountRepo) UpdateProgression(ctx context.Context, discordID, guildID int64, level int, xp int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.account.Level = level
	r.account.XP = xp
	return nil
}

func (r *fakeAccountRepo) ApplyPassiveGain(ctx context.Context, discordID, guildID int64, percentagePoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.account.PassiveMultiplierPercent += percentagePoints
	return nil
}

func (r *fakeAccountRepo) SetClaimTime(ctx context.Context, discordID, guildID int64, transactionType entities.TransactionType, claimedAt time.Time) error {
	return nil
}

func (r *fakeAccountRepo) GetTopByBalance(ctx context.Context, guildID int64, limit int) ([]*entities.Account, error) {
	return nil, nil
}

func TestWagerService_ConcurrentWagersConserveBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &fakeAccountRepo{account: entities.Account{
		DiscordID: 123, GuildID: 456, Balance: 1000, Level: 1,
	}}
	inventoryRepo := new(testhelpers.MockInventoryRepository)
	inventoryRepo.On("AddItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	historyRepo := new(testhelpers.MockGameHistoryRepository)
	historyRepo.On("RecordGameResult", mock.Anything, mock.Anything).Return(nil)
	balanceRepo := new(testhelpers.MockBalanceHistoryRepository)
	balanceRepo.On("Record", mock.Anything, mock.Anything).Return(nil)
	publisher := new(testhelpers.MockEventPublisher)
	publisher.On("Publish", mock.Anything).Return(nil)

	catalog := entities.NewCatalog()
	svc := NewWagerService(
		NewGameRegistry(NewSeededRandomSource(11)),
		NewItemPipeline(),
		NewProgression(catalog),
		NewActiveItemRegistry(),
		NewUserLocks(),
		repo,
		inventoryRepo,
		historyRepo,
		balanceRepo,
		publisher,
		time.Minute,
	)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StartWager(ctx, 123, 456, &entities.Bet{Amount: 100, GameKey: GameKeyCoinToss}, nil)
			if err != nil {
				// Only an exhausted balance may reject a wager.
				assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
			}
		}()
	}
	wg.Wait()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.GreaterOrEqual(t, repo.account.Balance, int64(0))
	assert.Equal(t, int64(1000)+repo.applied, repo.account.Balance,
		"final balance equals initial plus the sum of accepted deltas")
}
