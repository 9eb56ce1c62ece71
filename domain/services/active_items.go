package services

import (
	"sync"

	"carrotgamba/domain/entities"
)

// ActiveItemRegistry holds the in-memory active item sets, one per
// (user, guild) pair. A set is owned exclusively by that user's wager
// resolution while one is in flight; the registry lock only guards the
// map itself.
type ActiveItemRegistry struct {
	mu   sync.Mutex
	sets map[userGuildKey]*entities.ActiveItemSet
}

// NewActiveItemRegistry creates an empty registry.
func NewActiveItemRegistry() *ActiveItemRegistry {
	return &ActiveItemRegistry{sets: make(map[userGuildKey]*entities.ActiveItemSet)}
}

// Get returns the active set for a user, creating it if absent.
func (r *ActiveItemRegistry) Get(discordID, guildID int64) *entities.ActiveItemSet {
	key := userGuildKey{discordID: discordID, guildID: guildID}
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[key]
	if !ok {
		set = entities.NewActiveItemSet()
		r.sets[key] = set
	}
	return set
}

// Snapshot returns a copy of the user's active items for display.
func (r *ActiveItemRegistry) Snapshot(discordID, guildID int64) map[string]int {
	set := r.Get(discordID, guildID)
	out := make(map[string]int, len(set.Uses))
	for k, v := range set.Uses {
		out[k] = v
	}
	return out
}
