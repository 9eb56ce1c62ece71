package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Validate())
}

func TestCatalogValidate_ZeroTierWeight(t *testing.T) {
	catalog := NewCatalog()
	catalog.Crates["c1"].TierWeights[1] = 0

	err := catalog.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive weight")
}

func TestCatalogValidate_ZeroItemWeight(t *testing.T) {
	catalog := NewCatalog()
	catalog.Tiers[3].Items[ItemSecondChance] = 0

	err := catalog.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive weight")
}

func TestCatalogValidate_UndefinedTierReference(t *testing.T) {
	catalog := NewCatalog()
	catalog.Crates["c1"].TierWeights[9] = 5

	err := catalog.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "undefined tier")
}

func TestCatalogValidate_RatiosMustSumToOne(t *testing.T) {
	catalog := NewCatalog()
	catalog.CrateMixBreakpoints[20] = CrateMix{"c1": 0.5, "c2": 0.4}

	err := catalog.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sum to")
}

func TestCrateMixForLevel_NearestLowerBreakpoint(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		level      int
		breakpoint int
	}{
		{1, 1},
		{9, 1},
		{10, 10},
		{19, 10},
		{20, 20},
		{39, 20},
		{40, 40},
		{59, 40},
		{75, 60},
		{100, 80},
	}
	for _, tt := range tests {
		assert.Equal(t, catalog.CrateMixBreakpoints[tt.breakpoint], catalog.CrateMixForLevel(tt.level),
			"level %d should use breakpoint %d", tt.level, tt.breakpoint)
	}
}

func TestActiveItemSet_ConsumeRemovesExhausted(t *testing.T) {
	set := NewActiveItemSet()
	require.NoError(t, set.Activate(ItemCarrotSurge, 2))

	set.Consume(ItemCarrotSurge, 1)
	assert.Equal(t, 1, set.Remaining(ItemCarrotSurge))

	set.Consume(ItemCarrotSurge, 1)
	assert.False(t, set.Has(ItemCarrotSurge))
}

func TestActiveItemSet_DoubleActivateRejected(t *testing.T) {
	set := NewActiveItemSet()
	require.NoError(t, set.Activate(ItemJackpotJuice, 1))
	assert.ErrorIs(t, set.Activate(ItemJackpotJuice, 1), ErrItemAlreadyActive)
}
