package services

import (
	"fmt"
	"sort"

	"carrotgamba/domain/entities"
)

// CrateRoller draws item rewards from a crate's tier weight tables. Each
// roll picks a tier by weight, then an item by weight within the tier.
// The walk order over weight maps is sorted keys, so a given draw value
// always selects the same entry.
type CrateRoller struct {
	catalog *entities.Catalog
	rng     RandomSource
}

// NewCrateRoller creates the roller over a validated catalog.
func NewCrateRoller(catalog *entities.Catalog, rng RandomSource) *CrateRoller {
	return &CrateRoller{catalog: catalog, rng: rng}
}

// Roll performs crate.Rolls independent draws and returns the item keys
// won, in draw order.
func (r *CrateRoller) Roll(crateKey string) ([]string, error) {
	crate, err := r.catalog.Crate(crateKey)
	if err != nil {
		return nil, err
	}

	items := make([]string, 0, crate.Rolls)
	for i := 0; i < crate.Rolls; i++ {
		tierID, err := weightedPickInt(crate.TierWeights, r.draw)
		if err != nil {
			return nil, fmt.Errorf("rolling tier for crate %q: %w", crateKey, err)
		}
		tier := r.catalog.Tiers[tierID]
		itemKey, err := weightedPickString(tier.Items, r.draw)
		if err != nil {
			return nil, fmt.Errorf("rolling item in tier %d: %w", tierID, err)
		}
		items = append(items, itemKey)
	}
	return items, nil
}

// draw returns a uniform integer in [1, total].
func (r *CrateRoller) draw(total int) int {
	return r.rng.IntN(total) + 1
}

// weightedPickInt selects a key from a weight map: the draw lands in the
// span of exactly one entry when walked in ascending key order.
func weightedPickInt(weights map[int]int, draw func(total int) int) (int, error) {
	total := 0
	keys := make([]int, 0, len(weights))
	for k, w := range weights {
		keys = append(keys, k)
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("total weight must be positive, got %d", total)
	}
	sort.Ints(keys)

	n := draw(total)
	for _, k := range keys {
		n -= weights[k]
		if n <= 0 {
			return k, nil
		}
	}
	// Unreachable when draw is within [1, total].
	return keys[len(keys)-1], nil
}

func weightedPickString(weights map[string]int, draw func(total int) int) (string, error) {
	total := 0
	keys := make([]string, 0, len(weights))
	for k, w := range weights {
		keys = append(keys, k)
		total += w
	}
	if total <= 0 {
		return "", fmt.Errorf("total weight must be positive, got %d", total)
	}
	sort.Strings(keys)

	n := draw(total)
	for _, k := range keys {
		n -= weights[k]
		if n <= 0 {
			return k, nil
		}
	}
	return keys[len(keys)-1], nil
}
