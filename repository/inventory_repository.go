package repository

import (
	"context"
	"fmt"

	"carrotgamba/database"
	"carrotgamba/domain/entities"
)

// InventoryRepository implements interfaces.InventoryRepository on Postgres.
type InventoryRepository struct {
	q Queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

// AddItems grants qty copies of an item or crate to a user
func (r *InventoryRepository) AddItems(ctx context.Context, discordID, guildID int64, itemKey string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}

	query := `
		INSERT INTO inventory (discord_id, guild_id, item_key, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (discord_id, guild_id, item_key)
		DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, discordID, guildID, itemKey, qty); err != nil {
		return fmt.Errorf("failed to add %d x %s for discord ID %d in guild %d: %w", qty, itemKey, discordID, guildID, err)
	}

	return nil
}

// RemoveItems consumes qty copies of an item. The WHERE clause refuses
// to take the quantity below zero, which doubles as the ownership check.
func (r *InventoryRepository) RemoveItems(ctx context.Context, discordID, guildID int64, itemKey string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}

	query := `
		UPDATE inventory
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3 AND item_key = $4 AND quantity >= $1
	`

	result, err := r.q.Exec(ctx, query, qty, discordID, guildID, itemKey)
	if err != nil {
		return fmt.Errorf("failed to remove %d x %s for discord ID %d in guild %d: %w", qty, itemKey, discordID, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrItemNotOwned
	}

	return nil
}

// ListItems returns all owned items and crates with positive quantities
func (r *InventoryRepository) ListItems(ctx context.Context, discordID, guildID int64) ([]*entities.InventoryEntry, error) {
	query := `
		SELECT item_key, quantity
		FROM inventory
		WHERE discord_id = $1 AND guild_id = $2 AND quantity > 0
		ORDER BY item_key
	`

	rows, err := r.q.Query(ctx, query, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for discord ID %d in guild %d: %w", discordID, guildID, err)
	}
	defer rows.Close()

	var items []*entities.InventoryEntry
	for rows.Next() {
		var entry entities.InventoryEntry
		if err := rows.Scan(&entry.ItemKey, &entry.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		items = append(items, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}

	return items, nil
}
