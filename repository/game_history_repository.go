package repository

import (
	"context"
	"fmt"

	"carrotgamba/database"
	"carrotgamba/domain/entities"
)

// GameHistoryRepository implements interfaces.GameHistoryRepository on Postgres.
type GameHistoryRepository struct {
	q Queryable
}

// NewGameHistoryRepository creates a new game history repository
func NewGameHistoryRepository(db *database.DB) *GameHistoryRepository {
	return &GameHistoryRepository{q: db.Pool}
}

// RecordGameResult appends one settled round to the history
func (r *GameHistoryRepository) RecordGameResult(ctx context.Context, record *entities.GameRecord) error {
	query := `
		INSERT INTO game_history (discord_id, guild_id, game_key, result, bet_amount, payout)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.DiscordID,
		record.GuildID,
		record.GameKey,
		record.Result,
		record.BetAmount,
		record.Payout,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record game result for discord ID %d in guild %d: %w", record.DiscordID, record.GuildID, err)
	}

	return nil
}

// GetPlayerStats aggregates a user's lifetime record
func (r *GameHistoryRepository) GetPlayerStats(ctx context.Context, discordID, guildID int64) (*entities.PlayerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE result = 'win'),
			COUNT(*) FILTER (WHERE result = 'loss'),
			COALESCE(SUM(payout) FILTER (WHERE payout > 0), 0),
			COALESCE(SUM(-payout) FILTER (WHERE payout < 0), 0),
			COALESCE(MAX(payout) FILTER (WHERE payout > 0), 0),
			COALESCE(MAX(-payout) FILTER (WHERE payout < 0), 0)
		FROM game_history
		WHERE discord_id = $1 AND guild_id = $2
	`

	var stats entities.PlayerStats
	err := r.q.QueryRow(ctx, query, discordID, guildID).Scan(
		&stats.TotalGamesPlayed,
		&stats.TotalGamesWon,
		&stats.TotalGamesLost,
		&stats.TotalMoneyWon,
		&stats.TotalMoneyLost,
		&stats.HighestSingleWin,
		&stats.HighestSingleLoss,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats for discord ID %d in guild %d: %w", discordID, guildID, err)
	}

	return &stats, nil
}

// GetGameStats aggregates lifetime totals for one game variant
func (r *GameHistoryRepository) GetGameStats(ctx context.Context, guildID int64, gameKey string) (*entities.GameStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE result = 'win'),
			COUNT(*) FILTER (WHERE result = 'loss'),
			COALESCE(SUM(bet_amount), 0),
			COALESCE(SUM(payout) FILTER (WHERE payout > 0), 0),
			COALESCE(SUM(-payout) FILTER (WHERE payout < 0), 0)
		FROM game_history
		WHERE guild_id = $1 AND game_key = $2
	`

	stats := entities.GameStats{GameKey: gameKey}
	err := r.q.QueryRow(ctx, query, guildID, gameKey).Scan(
		&stats.TotalGamesPlayed,
		&stats.TotalGamesWon,
		&stats.TotalGamesLost,
		&stats.TotalMoneyWagered,
		&stats.TotalMoneyWon,
		&stats.TotalMoneyLost,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get game stats for %s in guild %d: %w", gameKey, guildID, err)
	}

	return &stats, nil
}
