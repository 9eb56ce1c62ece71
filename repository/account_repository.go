package repository

import (
	"context"
	"fmt"
	"time"

	"carrotgamba/database"
	"carrotgamba/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements interfaces.AccountRepository on Postgres.
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// GetByUser retrieves an account by Discord user and guild ID.
// Returns (nil, nil) when no account exists.
func (r *AccountRepository) GetByUser(ctx context.Context, discordID, guildID int64) (*entities.Account, error) {
	query := `
		SELECT discord_id, guild_id, username, balance, level, xp,
		       passive_multiplier_percent, last_daily_claim, last_weekly_claim,
		       created_at, updated_at
		FROM accounts
		WHERE discord_id = $1 AND guild_id = $2
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, discordID, guildID).Scan(
		&account.DiscordID,
		&account.GuildID,
		&account.Username,
		&account.Balance,
		&account.Level,
		&account.XP,
		&account.PassiveMultiplierPercent,
		&account.LastDailyClaim,
		&account.LastWeeklyClaim,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account for discord ID %d in guild %d: %w", discordID, guildID, err)
	}

	return &account, nil
}

// Create creates a new account with the initial balance
func (r *AccountRepository) Create(ctx context.Context, discordID, guildID int64, username string, initialBalance int64) (*entities.Account, error) {
	query := `
		INSERT INTO accounts (discord_id, guild_id, username, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	account := &entities.Account{
		DiscordID: discordID,
		GuildID:   guildID,
		Username:  username,
		Balance:   initialBalance,
		Level:     1,
	}
	err := r.q.QueryRow(ctx, query, discordID, guildID, username, initialBalance).Scan(
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account for discord ID %d in guild %d: %w", discordID, guildID, err)
	}

	return account, nil
}

// ApplyBalanceDelta atomically adjusts a balance by a signed amount.
// The WHERE clause refuses any delta that would drive the balance
// negative, so concurrent settlements can never overdraw the row.
func (r *AccountRepository) ApplyBalanceDelta(ctx context.Context, discordID, guildID int64, delta int64) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3 AND balance + $1 >= 0
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, delta, discordID, guildID).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Either the account is missing or the delta would overdraw it.
		existing, lookupErr := r.GetByUser(ctx, discordID, guildID)
		if lookupErr != nil {
			return 0, lookupErr
		}
		if existing == nil {
			return 0, entities.ErrAccountNotFound
		}
		return 0, entities.ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply balance delta for discord ID %d in guild %d: %w", discordID, guildID, err)
	}

	return newBalance, nil
}

// UpdateProgression stores a new level and residual XP
func (r *AccountRepository) UpdateProgression(ctx context.Context, discordID, guildID int64, level int, xp int64) error {
	query := `
		UPDATE accounts
		SET level = $1, xp = $2, updated_at = NOW()
		WHERE discord_id = $3 AND guild_id = $4
	`

	result, err := r.q.Exec(ctx, query, level, xp, discordID, guildID)
	if err != nil {
		return fmt.Errorf("failed to update progression for discord ID %d in guild %d: %w", discordID, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrAccountNotFound
	}

	return nil
}

// ApplyPassiveGain raises the passive multiplier by a number of percentage points
func (r *AccountRepository) ApplyPassiveGain(ctx context.Context, discordID, guildID int64, percentagePoints int) error {
	query := `
		UPDATE accounts
		SET passive_multiplier_percent = passive_multiplier_percent + $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3
	`

	result, err := r.q.Exec(ctx, query, percentagePoints, discordID, guildID)
	if err != nil {
		return fmt.Errorf("failed to apply passive gain for discord ID %d in guild %d: %w", discordID, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrAccountNotFound
	}

	return nil
}

// SetClaimTime records a daily or weekly claim timestamp
func (r *AccountRepository) SetClaimTime(ctx context.Context, discordID, guildID int64, transactionType entities.TransactionType, claimedAt time.Time) error {
	var column string
	switch transactionType {
	case entities.TransactionTypeDailyClaim:
		column = "last_daily_claim"
	case entities.TransactionTypeWeeklyClaim:
		column = "last_weekly_claim"
	default:
		return fmt.Errorf("transaction type %s is not a claim", transactionType)
	}

	query := fmt.Sprintf(`
		UPDATE accounts
		SET %s = $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3
	`, column)

	result, err := r.q.Exec(ctx, query, claimedAt, discordID, guildID)
	if err != nil {
		return fmt.Errorf("failed to set claim time for discord ID %d in guild %d: %w", discordID, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrAccountNotFound
	}

	return nil
}

// GetTopByBalance returns the guild leaderboard
func (r *AccountRepository) GetTopByBalance(ctx context.Context, guildID int64, limit int) ([]*entities.Account, error) {
	query := `
		SELECT discord_id, guild_id, username, balance, level, xp,
		       passive_multiplier_percent, last_daily_claim, last_weekly_claim,
		       created_at, updated_at
		FROM accounts
		WHERE guild_id = $1
		ORDER BY balance DESC, discord_id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var accounts []*entities.Account
	for rows.Next() {
		var account entities.Account
		err := rows.Scan(
			&account.DiscordID,
			&account.GuildID,
			&account.Username,
			&account.Balance,
			&account.Level,
			&account.XP,
			&account.PassiveMultiplierPercent,
			&account.LastDailyClaim,
			&account.LastWeeklyClaim,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
