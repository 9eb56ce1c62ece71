package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carrotgamba/domain/entities"
	"carrotgamba/domain/events"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByUser(ctx context.Context, discordID, guildID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, discordID, guildID int64, username string, initialBalance int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID, guildID, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, discordID, guildID int64, delta int64) (int64, error) {
	args := m.Called(ctx, discordID, guildID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) UpdateProgression(ctx context.Context, discordID, guildID int64, level int, xp int64) error {
	args := m.Called(ctx, discordID, guildID, level, xp)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyPassiveGain(ctx context.Context, discordID, guildID int64, percentagePoints int) error {
	args := m.Called(ctx, discordID, guildID, percentagePoints)
	return args.Error(0)
}

func (m *MockAccountRepository) SetClaimTime(ctx context.Context, discordID, guildID int64, transactionType entities.TransactionType, claimedAt time.Time) error {
	args := m.Called(ctx, discordID, guildID, transactionType, claimedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) GetTopByBalance(ctx context.Context, guildID int64, limit int) ([]*entities.Account, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Account), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) AddItems(ctx context.Context, discordID, guildID int64, itemKey string, qty int) error {
	args := m.Called(ctx, discordID, guildID, itemKey, qty)
	return args.Error(0)
}

func (m *MockInventoryRepository) RemoveItems(ctx context.Context, discordID, guildID int64, itemKey string, qty int) error {
	args := m.Called(ctx, discordID, guildID, itemKey, qty)
	return args.Error(0)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context, discordID, guildID int64) ([]*entities.InventoryEntry, error) {
	args := m.Called(ctx, discordID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryEntry), args.Error(1)
}

// MockGameHistoryRepository is a mock implementation of GameHistoryRepository
type MockGameHistoryRepository struct {
	mock.Mock
}

func (m *MockGameHistoryRepository) RecordGameResult(ctx context.Context, record *entities.GameRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockGameHistoryRepository) GetPlayerStats(ctx context.Context, discordID, guildID int64) (*entities.PlayerStats, error) {
	args := m.Called(ctx, discordID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlayerStats), args.Error(1)
}

func (m *MockGameHistoryRepository) GetGameStats(ctx context.Context, guildID int64, gameKey string) (*entities.GameStats, error) {
	args := m.Called(ctx, guildID, gameKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GameStats), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, discordID, guildID int64, limit int) ([]*entities.BalanceHistory, error) {
	args := m.Called(ctx, discordID, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BalanceHistory), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
