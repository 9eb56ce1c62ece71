package services

import (
	"math"
	"sort"

	"carrotgamba/domain/entities"
)

// Progression computes XP gains and level-up rewards. XP rewards risk
// relative to balance over raw stake size: the risk score peaks at the
// configured optimum bet/balance ratio and falls off as a gaussian, and
// stake magnitude enters with diminishing returns so large balances
// cannot buy XP linearly.
type Progression struct {
	cfg     entities.ProgressionConfig
	catalog *entities.Catalog
}

// NewProgression creates the progression engine over the catalog's
// configured curve.
func NewProgression(catalog *entities.Catalog) *Progression {
	return &Progression{cfg: catalog.Progression, catalog: catalog}
}

// RequiredXPForLevel returns the XP needed to clear a level.
func (p *Progression) RequiredXPForLevel(level int) int64 {
	return int64(math.Floor(p.cfg.BaseReqXP * math.Pow(float64(level), p.cfg.XPExponent)))
}

// CalculateXP returns the XP earned by one settled wager. Push and
// timeout results earn nothing. The soft cap attenuates only the portion
// above the cap.
func (p *Progression) CalculateXP(balance, betAmount int64, result entities.GameResult, level int) int64 {
	var resultMult float64
	switch result {
	case entities.ResultWin:
		resultMult = p.cfg.WinMultiplier
	case entities.ResultLoss:
		resultMult = p.cfg.LossMultiplier
	default:
		return 0
	}

	risk := 1.0
	if balance > 0 {
		risk = math.Min(1, float64(betAmount)/float64(balance))
	}
	riskScore := math.Exp(-math.Pow(risk-p.cfg.Mu, 2) / (2 * p.cfg.Sigma * p.cfg.Sigma))

	magnitude := math.Pow(math.Log10(float64(betAmount)/p.cfg.BaseBet+1), 0.8)

	combined := p.cfg.RiskWeight*riskScore + (1-p.cfg.RiskWeight)*magnitude
	rawXP := p.cfg.BaseXP * (1 + combined*p.cfg.ScaleMultiplier)
	xp := int64(math.Floor(rawXP * resultMult))

	cap := int64(math.Floor(float64(p.RequiredXPForLevel(level)) * p.cfg.SoftCapPercentage))
	if xp > cap {
		xp = cap + int64(math.Floor(float64(xp-cap)*p.cfg.OverflowReduction))
	}
	if xp < 0 {
		xp = 0
	}
	return xp
}

// ApplyXP folds an XP gain into the account's progression, walking the
// level curve as far as the gain reaches. Rewards accumulate per level
// gained. The level is pinned at the configured maximum.
func (p *Progression) ApplyXP(level int, currentXP, gained int64) *entities.LevelUpResult {
	result := &entities.LevelUpResult{
		OldLevel: level,
		NewLevel: level,
		XPGained: gained,
	}

	xp := currentXP + gained
	for result.NewLevel < p.cfg.MaxLevel {
		required := p.RequiredXPForLevel(result.NewLevel)
		if xp < required {
			break
		}
		xp -= required
		result.NewLevel++
		result.Rewards = append(result.Rewards, p.LevelRewards(result.NewLevel)...)
		result.PassiveGain += p.cfg.PassiveGainPercent
	}
	result.XPRemaining = xp
	return result
}

// LevelRewards returns the grants for reaching a level: a carrot bonus
// plus a crate bundle apportioned from the level's crate mix.
func (p *Progression) LevelRewards(level int) []entities.Reward {
	rewards := []entities.Reward{
		{Key: entities.RewardKeyCarrots, Amount: int64(level) * p.cfg.CarrotsPerLevel},
	}
	mix := p.catalog.CrateMixForLevel(level)
	total := crateCountForLevel(level)
	rewards = append(rewards, ApportionCrates(mix, total)...)
	return rewards
}

// crateCountForLevel is the step function for the crate bundle size: one
// crate plus one per ten levels, capped at five.
func crateCountForLevel(level int) int {
	count := 1 + level/10
	if count > 5 {
		count = 5
	}
	return count
}

// ApportionCrates converts a ratio mix into integer crate counts summing
// to exactly total. Each type gets the floor of its share; leftover
// crates go to the types with the largest fractional remainder, key order
// breaking ties so the result is deterministic.
func ApportionCrates(mix entities.CrateMix, total int) []entities.Reward {
	type share struct {
		key       string
		count     int
		remainder float64
	}

	keys := make([]string, 0, len(mix))
	for k := range mix {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	shares := make([]share, 0, len(keys))
	assigned := 0
	for _, k := range keys {
		exact := mix[k] * float64(total)
		count := int(math.Floor(exact))
		shares = append(shares, share{key: k, count: count, remainder: exact - float64(count)})
		assigned += count
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; i < total-assigned; i++ {
		shares[i%len(shares)].count++
	}

	sort.Slice(shares, func(i, j int) bool { return shares[i].key < shares[j].key })
	rewards := make([]entities.Reward, 0, len(shares))
	for _, s := range shares {
		if s.count > 0 {
			rewards = append(rewards, entities.Reward{Key: s.key, Amount: int64(s.count)})
		}
	}
	return rewards
}
