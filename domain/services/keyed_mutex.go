package services

import "sync"

// userGuildKey identifies one user within one guild.
type userGuildKey struct {
	discordID int64
	guildID   int64
}

// UserLocks serializes per-user mutations: wager resolution, item
// activation and active-set reads all run under the same (user, guild)
// mutex so that balance read, game resolution and settlement never
// interleave for one account. Different keys proceed concurrently.
// Entries are never evicted; the map is bounded by the player population.
type UserLocks struct {
	mu    sync.Mutex
	locks map[userGuildKey]*sync.Mutex
}

// NewUserLocks creates an empty lock table.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[userGuildKey]*sync.Mutex)}
}

// Lock acquires the mutex for a user and returns its unlock function.
func (m *UserLocks) Lock(discordID, guildID int64) func() {
	key := userGuildKey{discordID: discordID, guildID: guildID}
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
