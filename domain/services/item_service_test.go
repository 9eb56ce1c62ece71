package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carrotgamba/domain/entities"
	"carrotgamba/domain/interfaces"
	"carrotgamba/domain/testhelpers"
)

type itemFixture struct {
	svc            interfaces.ItemService
	inventoryRepo  *testhelpers.MockInventoryRepository
	eventPublisher *testhelpers.MockEventPublisher
	activeItems    *ActiveItemRegistry
}

func newItemFixture(rng RandomSource) *itemFixture {
	f := &itemFixture{
		inventoryRepo:  new(testhelpers.MockInventoryRepository),
		eventPublisher: new(testhelpers.MockEventPublisher),
		activeItems:    NewActiveItemRegistry(),
	}
	catalog := entities.NewCatalog()
	f.svc = NewItemService(
		catalog,
		NewCrateRoller(catalog, rng),
		f.activeItems,
		NewUserLocks(),
		f.inventoryRepo,
		f.eventPublisher,
	)
	return f
}

func TestItemService_UseItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("activates with full use budget", func(t *testing.T) {
		t.Parallel()
		f := newItemFixture(NewSeededRandomSource(1))
		f.inventoryRepo.On("RemoveItems", ctx, int64(1), int64(2), entities.ItemCarrotSurge, 1).Return(nil)

		item, err := f.svc.UseItem(ctx, 1, 2, entities.ItemCarrotSurge)
		require.NoError(t, err)
		assert.Equal(t, 5, item.MaxUses)
		assert.Equal(t, 5, f.activeItems.Get(1, 2).Remaining(entities.ItemCarrotSurge))
	})

	t.Run("unknown item", func(t *testing.T) {
		t.Parallel()
		f := newItemFixture(NewSeededRandomSource(1))
		_, err := f.svc.UseItem(ctx, 1, 2, "warp_drive")
		assert.ErrorIs(t, err, entities.ErrUnknownItem)
	})

	t.Run("not owned", func(t *testing.T) {
		t.Parallel()
		f := newItemFixture(NewSeededRandomSource(1))
		f.inventoryRepo.On("RemoveItems", ctx, int64(1), int64(2), entities.ItemSecondChance, 1).Return(entities.ErrItemNotOwned)
		_, err := f.svc.UseItem(ctx, 1, 2, entities.ItemSecondChance)
		assert.ErrorIs(t, err, entities.ErrItemNotOwned)
	})

	t.Run("already active", func(t *testing.T) {
		t.Parallel()
		f := newItemFixture(NewSeededRandomSource(1))
		require.NoError(t, f.activeItems.Get(1, 2).Activate(entities.ItemJackpotJuice, 1))
		_, err := f.svc.UseItem(ctx, 1, 2, entities.ItemJackpotJuice)
		assert.ErrorIs(t, err, entities.ErrItemAlreadyActive)
		f.inventoryRepo.AssertNotCalled(t, "RemoveItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestItemService_OpenCrate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rolls and grants rewards", func(t *testing.T) {
		t.Parallel()
		f := newItemFixture(NewSeededRandomSource(9))
		f.inventoryRepo.On("RemoveItems", ctx, int64(1), int64(2), "c3", 1).Return(nil)
		f.inventoryRepo.On("AddItems", ctx, int64(1), int64(2), mock.Anything, mock.Anything).Return(nil)
		f.eventPublisher.On("Publish", mock.Anything).Return(nil)

		rewards, err := f.svc.OpenCrate(ctx, 1, 2, "c3")
		require.NoError(t, err)

		var total int64
		for _, r := range rewards {
			assert.False(t, r.IsCurrency())
			total += r.Amount
		}
		assert.Equal(t, int64(3), total, "crate III performs three rolls")
	})

	t.Run("unknown crate", func(t *testing.T) {
		t.Parallel()
		f := newItemFixture(NewSeededRandomSource(1))
		_, err := f.svc.OpenCrate(ctx, 1, 2, "c99")
		assert.ErrorIs(t, err, entities.ErrUnknownCrate)
	})

	t.Run("crate not owned", func(t *testing.T) {
		t.Parallel()
		f := newItemFixture(NewSeededRandomSource(1))
		f.inventoryRepo.On("RemoveItems", ctx, int64(1), int64(2), "c1", 1).Return(entities.ErrItemNotOwned)
		_, err := f.svc.OpenCrate(ctx, 1, 2, "c1")
		assert.ErrorIs(t, err, entities.ErrItemNotOwned)
	})
}

func TestItemService_ActiveItemsSnapshot(t *testing.T) {
	t.Parallel()

	f := newItemFixture(NewSeededRandomSource(1))
	require.NoError(t, f.activeItems.Get(1, 2).Activate(entities.ItemCarrotSurge, 5))

	snapshot := f.svc.ActiveItems(1, 2)
	assert.Equal(t, map[string]int{entities.ItemCarrotSurge: 5}, snapshot)

	// Mutating the snapshot does not touch the live set.
	snapshot[entities.ItemCarrotSurge] = 99
	assert.Equal(t, 5, f.activeItems.Get(1, 2).Remaining(entities.ItemCarrotSurge))
}
