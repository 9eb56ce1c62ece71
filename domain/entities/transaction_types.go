package entities

// TransactionType categorizes a balance change for the audit trail.
type TransactionType string

const (
	TransactionTypeInitial      TransactionType = "initial"
	TransactionTypeWagerWin     TransactionType = "wager_win"
	TransactionTypeWagerLoss    TransactionType = "wager_loss"
	TransactionTypeWagerPush    TransactionType = "wager_push"
	TransactionTypeWagerTimeout TransactionType = "wager_timeout"
	TransactionTypeLevelReward  TransactionType = "level_reward"
	TransactionTypeDailyClaim   TransactionType = "daily_claim"
	TransactionTypeWeeklyClaim  TransactionType = "weekly_claim"
	TransactionTypeTransferIn   TransactionType = "transfer_in"
	TransactionTypeTransferOut  TransactionType = "transfer_out"
)

// TransactionTypeForResult maps a game result to its transaction type.
func TransactionTypeForResult(result GameResult) TransactionType {
	switch result {
	case ResultWin:
		return TransactionTypeWagerWin
	case ResultLoss:
		return TransactionTypeWagerLoss
	case ResultPush:
		return TransactionTypeWagerPush
	default:
		return TransactionTypeWagerTimeout
	}
}
