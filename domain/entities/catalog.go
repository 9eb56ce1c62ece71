package entities

import (
	"fmt"
	"math"
	"sort"
)

// Crate is a static catalog entry for a lootbox. Opening a crate performs
// Rolls independent draws: a tier weighted by TierWeights, then an item
// weighted within the tier.
type Crate struct {
	Key         string
	Name        string
	Price       int64
	Rolls       int
	TierWeights map[int]int
}

// Tier is a rarity bucket mapping item keys to roll weights.
type Tier struct {
	Items map[string]int
}

// ProgressionConfig holds the XP/leveling curve constants.
type ProgressionConfig struct {
	WinMultiplier      float64
	LossMultiplier     float64
	Mu                 float64 // optimal bet/balance ratio
	Sigma              float64 // falloff around Mu
	RiskWeight         float64 // weight of risk vs magnitude, in [0,1]
	BaseXP             float64
	BaseBet            float64
	ScaleMultiplier    float64
	SoftCapPercentage  float64
	OverflowReduction  float64
	BaseReqXP          float64
	XPExponent         float64
	MaxLevel           int
	CarrotsPerLevel    int64
	PassiveGainPercent int // percentage points added per level gained
}

// CrateMix maps crate keys to the fraction of a level-up's crate bundle
// they make up. Ratios at each breakpoint sum to 1.
type CrateMix map[string]float64

// Catalog is the read-only, process-wide item/crate/tier configuration,
// loaded once at startup and safe for unsynchronized concurrent reads.
type Catalog struct {
	Items       map[string]*Item
	Crates      map[string]*Crate
	Tiers       map[int]*Tier
	Progression ProgressionConfig

	// CrateMixBreakpoints maps a level breakpoint to the crate-type mix
	// granted from that level up to the next breakpoint.
	CrateMixBreakpoints map[int]CrateMix
}

// NewCatalog returns the default catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Items: map[string]*Item{
			ItemSecondChance: {
				Key:        ItemSecondChance,
				Name:       "Second Chance Token",
				Desc:       "Lasts 1 game. Grants a second chance if you lose, giving you another opportunity to win the same amount.",
				Icon:       "🌀",
				Price:      5000,
				MaxUses:    1,
				RewardTier: 3,
			},
			ItemLossCushion: {
				Key:        ItemLossCushion,
				Name:       "Loss Cushion",
				Desc:       "Lasts 1 game. If you lose, reduces your loss by 50%.",
				Icon:       "🛡️",
				Price:      3000,
				MaxUses:    1,
				RewardTier: 1,
			},
			ItemJackpotJuice: {
				Key:        ItemJackpotJuice,
				Name:       "Jackpot Juice",
				Desc:       "Lasts 1 game. If you win, doubles your winnings.",
				Icon:       "💰",
				Price:      10000,
				MaxUses:    1,
				RewardTier: 2,
			},
			ItemCarrotSurge: {
				Key:        ItemCarrotSurge,
				Name:       "Carrot Surge",
				Desc:       "Lasts for 5 games. If you win any of them, you earn +10% carrots on top of your winnings.",
				Icon:       "⚡",
				Price:      2000,
				MaxUses:    5,
				RewardTier: 1,
			},
			ItemNumberOracle: {
				Key:        ItemNumberOracle,
				Name:       "Number Oracle",
				Desc:       "Lasts 1 game. Highlights 5 numbers in Number Guess. The winning number is guaranteed to be among them.",
				Icon:       "🔮",
				Price:      10000,
				MaxUses:    1,
				RewardTier: 2,
			},
			ItemXRayVision: {
				Key:        ItemXRayVision,
				Name:       "X-Ray Vision",
				Desc:       "Lasts 1 game. Reveals the dealer's hidden card in Blackjack.",
				Icon:       "👓",
				Price:      7000,
				MaxUses:    1,
				RewardTier: 1,
			},
		},
		Crates: map[string]*Crate{
			"c1": {Key: "c1", Name: "Crate I", Price: 5000, Rolls: 1, TierWeights: map[int]int{1: 90, 2: 10}},
			"c2": {Key: "c2", Name: "Crate II", Price: 10000, Rolls: 2, TierWeights: map[int]int{1: 60, 2: 40}},
			"c3": {Key: "c3", Name: "Crate III", Price: 20000, Rolls: 3, TierWeights: map[int]int{1: 40, 2: 35, 3: 20, 4: 5}},
			"c4": {Key: "c4", Name: "Crate IV", Price: 50000, Rolls: 4, TierWeights: map[int]int{1: 20, 2: 35, 3: 35, 4: 10}},
			"c5": {Key: "c5", Name: "Crate V", Price: 100000, Rolls: 5, TierWeights: map[int]int{1: 10, 2: 20, 3: 40, 4: 30}},
		},
		Tiers: map[int]*Tier{
			1: {Items: map[string]int{ItemLossCushion: 50, ItemCarrotSurge: 50}},
			2: {Items: map[string]int{ItemJackpotJuice: 30, ItemXRayVision: 40, ItemNumberOracle: 30}},
			3: {Items: map[string]int{ItemSecondChance: 100}},
			4: {Items: map[string]int{ItemSecondChance: 100}},
		},
		Progression: ProgressionConfig{
			WinMultiplier:      1.05,
			LossMultiplier:     0.95,
			Mu:                 0.5,
			Sigma:              0.1,
			RiskWeight:         0.75,
			BaseXP:             30,
			BaseBet:            1000,
			ScaleMultiplier:    3.0,
			SoftCapPercentage:  0.25,
			OverflowReduction:  0.25,
			BaseReqXP:          100,
			XPExponent:         1.05,
			MaxLevel:           100,
			CarrotsPerLevel:    1000,
			PassiveGainPercent: 10,
		},
		CrateMixBreakpoints: map[int]CrateMix{
			1:  {"c1": 1.0},
			10: {"c1": 0.7, "c2": 0.3},
			20: {"c1": 0.5, "c2": 0.3, "c3": 0.2},
			40: {"c2": 0.4, "c3": 0.4, "c4": 0.2},
			60: {"c3": 0.4, "c4": 0.4, "c5": 0.2},
			80: {"c4": 0.5, "c5": 0.5},
		},
	}
}

// Item returns the catalog item for a key, or ErrUnknownItem.
func (c *Catalog) Item(key string) (*Item, error) {
	item, ok := c.Items[key]
	if !ok {
		return nil, ErrUnknownItem
	}
	return item, nil
}

// Crate returns the catalog crate for a key, or ErrUnknownCrate.
func (c *Catalog) Crate(key string) (*Crate, error) {
	crate, ok := c.Crates[key]
	if !ok {
		return nil, ErrUnknownCrate
	}
	return crate, nil
}

// IsCrateKey reports whether the key names a crate rather than an item.
func (c *Catalog) IsCrateKey(key string) bool {
	_, ok := c.Crates[key]
	return ok
}

// CrateMixForLevel returns the crate-type mix at the nearest-lower defined
// breakpoint for a level.
func (c *Catalog) CrateMixForLevel(level int) CrateMix {
	best := 0
	for bp := range c.CrateMixBreakpoints {
		if bp <= level && bp > best {
			best = bp
		}
	}
	return c.CrateMixBreakpoints[best]
}

// Validate checks the catalog for configuration errors. A zero or negative
// total weight anywhere is fatal: weighted rolls divide by the weight sum.
func (c *Catalog) Validate() error {
	for key, crate := range c.Crates {
		if crate.Rolls <= 0 {
			return fmt.Errorf("crate %q has non-positive roll count %d", key, crate.Rolls)
		}
		total := 0
		for tier, w := range crate.TierWeights {
			if w <= 0 {
				return fmt.Errorf("crate %q has non-positive weight %d for tier %d", key, w, tier)
			}
			if _, ok := c.Tiers[tier]; !ok {
				return fmt.Errorf("crate %q references undefined tier %d", key, tier)
			}
			total += w
		}
		if total <= 0 {
			return fmt.Errorf("crate %q has zero total tier weight", key)
		}
	}
	for tier, t := range c.Tiers {
		total := 0
		for itemKey, w := range t.Items {
			if w <= 0 {
				return fmt.Errorf("tier %d has non-positive weight %d for item %q", tier, w, itemKey)
			}
			if _, ok := c.Items[itemKey]; !ok {
				return fmt.Errorf("tier %d references undefined item %q", tier, itemKey)
			}
			total += w
		}
		if total <= 0 {
			return fmt.Errorf("tier %d has zero total item weight", tier)
		}
	}
	if _, ok := c.CrateMixBreakpoints[1]; !ok {
		return fmt.Errorf("crate mix table has no breakpoint for level 1")
	}
	breakpoints := make([]int, 0, len(c.CrateMixBreakpoints))
	for bp := range c.CrateMixBreakpoints {
		breakpoints = append(breakpoints, bp)
	}
	sort.Ints(breakpoints)
	for _, bp := range breakpoints {
		mix := c.CrateMixBreakpoints[bp]
		sum := 0.0
		for crateKey, ratio := range mix {
			if _, ok := c.Crates[crateKey]; !ok {
				return fmt.Errorf("crate mix at level %d references undefined crate %q", bp, crateKey)
			}
			if ratio < 0 {
				return fmt.Errorf("crate mix at level %d has negative ratio for %q", bp, crateKey)
			}
			sum += ratio
		}
		if math.Abs(sum-1.0) > 1e-9 {
			return fmt.Errorf("crate mix ratios at level %d sum to %v, want 1.0", bp, sum)
		}
	}
	return nil
}
