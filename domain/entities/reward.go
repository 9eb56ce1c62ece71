package entities

// RewardKeyCarrots is the currency reward key.
const RewardKeyCarrots = "carrots"

// Reward is a single grant produced by level-up apportionment or a crate
// roll: currency when Key is RewardKeyCarrots, otherwise an item or crate.
type Reward struct {
	Key    string
	Amount int64
}

// IsCurrency reports whether the reward is a carrot grant.
func (r Reward) IsCurrency() bool {
	return r.Key == RewardKeyCarrots
}

// LevelUpResult summarizes a progression step after a settled wager.
type LevelUpResult struct {
	OldLevel     int
	NewLevel     int
	XPGained     int64
	XPRemaining  int64
	Rewards      []Reward
	PassiveGain  int // percentage points added to the passive multiplier
}

// LeveledUp reports whether at least one level was gained.
func (l *LevelUpResult) LeveledUp() bool {
	return l.NewLevel > l.OldLevel
}
