package entities

import "time"

// GameRecord is one settled game round for the history table.
type GameRecord struct {
	ID        int64      `db:"id"`
	DiscordID int64      `db:"discord_id"`
	GuildID   int64      `db:"guild_id"`
	GameKey   string     `db:"game_key"`
	Result    GameResult `db:"result"`
	BetAmount int64      `db:"bet_amount"`
	Payout    int64      `db:"payout"`
	CreatedAt time.Time  `db:"created_at"`
}

// PlayerStats aggregates a user's lifetime gambling record.
type PlayerStats struct {
	TotalGamesPlayed  int   `db:"total_games_played"`
	TotalGamesWon     int   `db:"total_games_won"`
	TotalGamesLost    int   `db:"total_games_lost"`
	TotalMoneyWon     int64 `db:"total_money_won"`
	TotalMoneyLost    int64 `db:"total_money_lost"`
	HighestSingleWin  int64 `db:"highest_single_win"`
	HighestSingleLoss int64 `db:"highest_single_loss"`
}

// WinRate returns wins over decided games as a percentage.
func (s *PlayerStats) WinRate() float64 {
	decided := s.TotalGamesWon + s.TotalGamesLost
	if decided == 0 {
		return 0
	}
	return float64(s.TotalGamesWon) / float64(decided) * 100
}

// GameStats aggregates lifetime totals for one game variant.
type GameStats struct {
	GameKey           string `db:"game_key"`
	TotalGamesPlayed  int    `db:"total_games_played"`
	TotalGamesWon     int    `db:"total_games_won"`
	TotalGamesLost    int    `db:"total_games_lost"`
	TotalMoneyWagered int64  `db:"total_money_wagered"`
	TotalMoneyWon     int64  `db:"total_money_won"`
	TotalMoneyLost    int64  `db:"total_money_lost"`
}
