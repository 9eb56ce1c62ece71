package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrotgamba/domain/entities"
)

func TestWeightedPick_DeterministicWalk(t *testing.T) {
	t.Parallel()

	weights := map[int]int{1: 90, 2: 10}

	tests := []struct {
		draw int
		want int
	}{
		{draw: 1, want: 1},
		{draw: 90, want: 1},
		{draw: 91, want: 2},
		{draw: 100, want: 2},
	}
	for _, tt := range tests {
		got, err := weightedPickInt(weights, func(total int) int {
			require.Equal(t, 100, total)
			return tt.draw
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "draw %d", tt.draw)
	}
}

func TestWeightedPick_RejectsZeroTotalWeight(t *testing.T) {
	t.Parallel()

	_, err := weightedPickInt(map[int]int{}, func(int) int { return 1 })
	assert.Error(t, err)

	_, err = weightedPickString(map[string]int{}, func(int) int { return 1 })
	assert.Error(t, err)
}

func TestCrateRoller_RollCountAndMembership(t *testing.T) {
	t.Parallel()

	catalog := entities.NewCatalog()
	roller := NewCrateRoller(catalog, NewSeededRandomSource(3))

	for key, crate := range catalog.Crates {
		items, err := roller.Roll(key)
		require.NoError(t, err)
		assert.Len(t, items, crate.Rolls, "crate %s", key)
		for _, itemKey := range items {
			_, err := catalog.Item(itemKey)
			assert.NoError(t, err, "crate %s rolled unknown item %q", key, itemKey)
		}
	}

	_, err := roller.Roll("c9")
	assert.ErrorIs(t, err, entities.ErrUnknownCrate)
}

func TestCrateRoller_TierDistribution(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping distribution test in short mode")
	}

	// Crate c1 weights tier 1 at 90 and tier 2 at 10. Tier 1 holds only
	// lc and cs, tier 2 only jj, xrv and no.
	catalog := entities.NewCatalog()
	roller := NewCrateRoller(catalog, NewSeededRandomSource(99))

	const draws = 100_000
	tier1 := 0
	for i := 0; i < draws; i++ {
		items, err := roller.Roll("c1")
		require.NoError(t, err)
		switch items[0] {
		case entities.ItemLossCushion, entities.ItemCarrotSurge:
			tier1++
		}
	}

	freq := float64(tier1) / float64(draws)
	assert.InDelta(t, 0.90, freq, 0.01)
}
