package testutil

import (
	"carrotgamba/domain/entities"
)

// CreateTestBalanceHistory builds a balance history entry with sane defaults
func CreateTestBalanceHistory(discordID, guildID int64, transactionType entities.TransactionType) *entities.BalanceHistory {
	return &entities.BalanceHistory{
		DiscordID:       discordID,
		GuildID:         guildID,
		BalanceBefore:   1000,
		BalanceAfter:    1100,
		ChangeAmount:    100,
		TransactionType: transactionType,
	}
}

// CreateTestGameRecord builds a settled game record with sane defaults
func CreateTestGameRecord(discordID, guildID int64, gameKey string, result entities.GameResult, bet, payout int64) *entities.GameRecord {
	return &entities.GameRecord{
		DiscordID: discordID,
		GuildID:   guildID,
		GameKey:   gameKey,
		Result:    result,
		BetAmount: bet,
		Payout:    payout,
	}
}
