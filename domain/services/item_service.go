package services

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"carrotgamba/domain/entities"
	"carrotgamba/domain/events"
	"carrotgamba/domain/interfaces"
)

type itemService struct {
	catalog     *entities.Catalog
	roller      *CrateRoller
	activeItems *ActiveItemRegistry
	locks       *UserLocks

	inventoryRepo  interfaces.InventoryRepository
	eventPublisher interfaces.EventPublisher
}

// NewItemService creates the item service over a validated catalog.
func NewItemService(
	catalog *entities.Catalog,
	roller *CrateRoller,
	activeItems *ActiveItemRegistry,
	locks *UserLocks,
	inventoryRepo interfaces.InventoryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.ItemService {
	return &itemService{
		catalog:        catalog,
		roller:         roller,
		activeItems:    activeItems,
		locks:          locks,
		inventoryRepo:  inventoryRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *itemService) UseItem(ctx context.Context, discordID, guildID int64, itemKey string) (*entities.Item, error) {
	item, err := s.catalog.Item(itemKey)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(discordID, guildID)
	defer unlock()

	active := s.activeItems.Get(discordID, guildID)
	if active.Has(itemKey) {
		return nil, entities.ErrItemAlreadyActive
	}

	if err := s.inventoryRepo.RemoveItems(ctx, discordID, guildID, itemKey, 1); err != nil {
		return nil, err
	}
	if err := active.Activate(itemKey, item.MaxUses); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"guild_id":   guildID,
		"item":       itemKey,
		"uses":       item.MaxUses,
	}).Info("item activated")
	return item, nil
}

func (s *itemService) OpenCrate(ctx context.Context, discordID, guildID int64, crateKey string) ([]entities.Reward, error) {
	if _, err := s.catalog.Crate(crateKey); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(discordID, guildID)
	defer unlock()

	if err := s.inventoryRepo.RemoveItems(ctx, discordID, guildID, crateKey, 1); err != nil {
		return nil, err
	}

	itemKeys, err := s.roller.Roll(crateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to roll crate %q: %w", crateKey, err)
	}

	counts := make(map[string]int64)
	for _, k := range itemKeys {
		counts[k]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rewards := make([]entities.Reward, 0, len(keys))
	for _, k := range keys {
		if err := s.inventoryRepo.AddItems(ctx, discordID, guildID, k, int(counts[k])); err != nil {
			return nil, fmt.Errorf("failed to grant rolled item %q: %w", k, err)
		}
		rewards = append(rewards, entities.Reward{Key: k, Amount: counts[k]})
	}

	if err := s.eventPublisher.Publish(events.CrateOpenedEvent{
		UserID:   discordID,
		GuildID:  guildID,
		CrateKey: crateKey,
		ItemKeys: itemKeys,
	}); err != nil {
		log.WithError(err).Error("failed to publish crate opened event")
	}

	return rewards, nil
}

func (s *itemService) ListInventory(ctx context.Context, discordID, guildID int64) ([]*entities.InventoryEntry, error) {
	entries, err := s.inventoryRepo.ListItems(ctx, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return entries, nil
}

func (s *itemService) ActiveItems(discordID, guildID int64) map[string]int {
	unlock := s.locks.Lock(discordID, guildID)
	defer unlock()
	return s.activeItems.Snapshot(discordID, guildID)
}
