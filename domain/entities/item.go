package entities

// Item keys, fixed by the catalog.
const (
	ItemSecondChance = "sc"
	ItemLossCushion  = "lc"
	ItemJackpotJuice = "jj"
	ItemCarrotSurge  = "cs"
	ItemNumberOracle = "no"
	ItemXRayVision   = "xrv"
)

// Item is a static catalog entry for an activatable item.
type Item struct {
	Key        string
	Name       string
	Desc       string
	Icon       string
	Price      int64
	MaxUses    int
	RewardTier int
}

// InventoryEntry is an owned item (or crate) with a quantity.
type InventoryEntry struct {
	ItemKey  string
	Quantity int
}

// ActiveItemSet maps item key to remaining uses for one (user, guild) pair.
// It lives in memory from activation until the uses are exhausted and is
// owned exclusively by that user's wager resolution while one is in flight.
type ActiveItemSet struct {
	Uses map[string]int
}

// NewActiveItemSet returns an empty active set.
func NewActiveItemSet() *ActiveItemSet {
	return &ActiveItemSet{Uses: make(map[string]int)}
}

// Has reports whether the item is active with at least one use left.
func (s *ActiveItemSet) Has(itemKey string) bool {
	return s != nil && s.Uses[itemKey] > 0
}

// Remaining returns the remaining uses for an item, zero if inactive.
func (s *ActiveItemSet) Remaining(itemKey string) int {
	if s == nil {
		return 0
	}
	return s.Uses[itemKey]
}

// Activate adds an item with the given use budget.
func (s *ActiveItemSet) Activate(itemKey string, uses int) error {
	if s.Uses[itemKey] > 0 {
		return ErrItemAlreadyActive
	}
	s.Uses[itemKey] = uses
	return nil
}

// Consume burns n uses of an item, removing it once exhausted.
func (s *ActiveItemSet) Consume(itemKey string, n int) {
	if s == nil || s.Uses[itemKey] == 0 {
		return
	}
	s.Uses[itemKey] -= n
	if s.Uses[itemKey] <= 0 {
		delete(s.Uses, itemKey)
	}
}
