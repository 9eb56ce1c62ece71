package interfaces

import (
	"context"
	"time"

	"carrotgamba/domain/entities"
	"carrotgamba/domain/events"
)

// AccountRepository defines the interface for account data access.
// Balances are owned here: the engine only requests deltas.
type AccountRepository interface {
	// GetByUser retrieves an account by Discord user and guild ID.
	// Returns (nil, nil) when no account exists.
	GetByUser(ctx context.Context, discordID, guildID int64) (*entities.Account, error)

	// Create creates a new account with the initial balance
	Create(ctx context.Context, discordID, guildID int64, username string, initialBalance int64) (*entities.Account, error)

	// ApplyBalanceDelta atomically adjusts a balance by a signed amount.
	// A delta that would drive the balance negative is rejected with
	// entities.ErrInsufficientFunds and leaves the row untouched.
	ApplyBalanceDelta(ctx context.Context, discordID, guildID int64, delta int64) (newBalance int64, err error)

	// UpdateProgression stores a new level and residual XP
	UpdateProgression(ctx context.Context, discordID, guildID int64, level int, xp int64) error

	// ApplyPassiveGain raises the passive multiplier by a number of
	// percentage points
	ApplyPassiveGain(ctx context.Context, discordID, guildID int64, percentagePoints int) error

	// SetClaimTime records a daily or weekly claim timestamp
	SetClaimTime(ctx context.Context, discordID, guildID int64, transactionType entities.TransactionType, claimedAt time.Time) error

	// GetTopByBalance returns the guild leaderboard
	GetTopByBalance(ctx context.Context, guildID int64, limit int) ([]*entities.Account, error)
}

// InventoryRepository defines the interface for item inventory access
type InventoryRepository interface {
	// AddItems grants qty copies of an item or crate to a user
	AddItems(ctx context.Context, discordID, guildID int64, itemKey string, qty int) error

	// RemoveItems consumes qty copies; removing more than owned is
	// rejected with entities.ErrItemNotOwned.
	RemoveItems(ctx context.Context, discordID, guildID int64, itemKey string, qty int) error

	// ListItems returns all owned items and crates with quantities
	ListItems(ctx context.Context, discordID, guildID int64) ([]*entities.InventoryEntry, error)
}

// GameHistoryRepository is the fire-and-record stats sink for settled games
type GameHistoryRepository interface {
	// RecordGameResult appends one settled round to the history
	RecordGameResult(ctx context.Context, record *entities.GameRecord) error

	// GetPlayerStats aggregates a user's lifetime record
	GetPlayerStats(ctx context.Context, discordID, guildID int64) (*entities.PlayerStats, error)

	// GetGameStats aggregates lifetime totals for one game variant
	GetGameStats(ctx context.Context, guildID int64, gameKey string) (*entities.GameStats, error)
}

// BalanceHistoryRepository defines the interface for balance audit records
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns balance history for a specific user
	GetByUser(ctx context.Context, discordID, guildID int64, limit int) ([]*entities.BalanceHistory, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
