package interfaces

import (
	"context"

	"carrotgamba/domain/entities"
)

// WagerService resolves wagers end to end: game play, item effects,
// settlement, history and progression. At most one wager is in flight per
// (user, guild) pair; inputs for the same pair are fully serialized.
type WagerService interface {
	// StartWager validates and begins a wager. The initial input carries
	// the guess for number guess; it is nil for other games. The returned
	// update is either pending (interactive session) or settled.
	StartWager(ctx context.Context, discordID, guildID int64, bet *entities.Bet, initial *entities.GameInput) (*entities.WagerUpdate, error)

	// AdvanceWager feeds one player input to the user's suspended session.
	AdvanceWager(ctx context.Context, discordID, guildID int64, input entities.GameInput) (*entities.WagerUpdate, error)

	// OnTimeout registers a callback invoked when a session is forcibly
	// resolved as timeout. Used by the presentation layer to update its
	// message for the expired session.
	OnTimeout(fn func(discordID, guildID int64, update *entities.WagerUpdate))

	// GameKeys lists the registered game variants.
	GameKeys() []string

	// MinBet returns the minimum bet for a game key.
	MinBet(gameKey string) (int64, error)
}

// ItemService manages inventory-backed item activation and crate opening.
type ItemService interface {
	// UseItem moves one item from inventory into the user's active set,
	// charged with the item's full use budget.
	UseItem(ctx context.Context, discordID, guildID int64, itemKey string) (*entities.Item, error)

	// OpenCrate consumes a crate from inventory, rolls its rewards and
	// grants them.
	OpenCrate(ctx context.Context, discordID, guildID int64, crateKey string) ([]entities.Reward, error)

	// ListInventory returns owned items and crates.
	ListInventory(ctx context.Context, discordID, guildID int64) ([]*entities.InventoryEntry, error)

	// ActiveItems returns a snapshot of the user's active set for display.
	ActiveItems(discordID, guildID int64) map[string]int
}

// AccountService manages enrollment, claims and leaderboards.
type AccountService interface {
	// Enroll creates an account with the configured starting balance.
	Enroll(ctx context.Context, discordID, guildID int64, username string) (*entities.Account, error)

	// GetAccount returns the account, or ErrAccountNotFound.
	GetAccount(ctx context.Context, discordID, guildID int64) (*entities.Account, error)

	// ClaimDaily grants the daily bonus if the cooldown has elapsed.
	ClaimDaily(ctx context.Context, discordID, guildID int64) (granted int64, newBalance int64, err error)

	// ClaimWeekly grants the weekly bonus if the cooldown has elapsed.
	ClaimWeekly(ctx context.Context, discordID, guildID int64) (granted int64, newBalance int64, err error)

	// Transfer moves carrots from one enrolled user to another in the same
	// guild. Both users' operations are serialized for the duration.
	Transfer(ctx context.Context, fromDiscordID, toDiscordID, guildID int64, amount int64) (senderBalance int64, recipientBalance int64, err error)

	// Leaderboard returns the guild's top accounts by balance.
	Leaderboard(ctx context.Context, guildID int64, limit int) ([]*entities.Account, error)
}

// StatsService exposes aggregated gambling statistics.
type StatsService interface {
	PlayerStats(ctx context.Context, discordID, guildID int64) (*entities.PlayerStats, error)
	GameStats(ctx context.Context, guildID int64, gameKey string) (*entities.GameStats, error)
}
