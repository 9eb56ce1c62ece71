package entities

import "fmt"

// Bet represents a wager on a single game round. Immutable once accepted.
type Bet struct {
	Amount  int64
	GameKey string
}

// Validate checks the bet against a per-game minimum.
func (b *Bet) Validate(minBet int64) error {
	if b.Amount < minBet {
		return fmt.Errorf("bet must be at least %d carrots", minBet)
	}
	return nil
}
