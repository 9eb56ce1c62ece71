package events

import "carrotgamba/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeAccountCreated EventType = "account_created"
	EventTypeWagerSettled   EventType = "wager_settled"
	EventTypeLevelUp        EventType = "level_up"
	EventTypeCrateOpened    EventType = "crate_opened"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	GuildID         int64
	OldBalance      int64
	NewBalance      int64
	TransactionType entities.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountCreatedEvent represents a new enrollment
type AccountCreatedEvent struct {
	UserID         int64
	GuildID        int64
	Username       string
	InitialBalance int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// WagerSettledEvent represents a wager that reached a terminal outcome
type WagerSettledEvent struct {
	UserID    int64
	GuildID   int64
	GameKey   string
	Result    entities.GameResult
	BetAmount int64
	Payout    int64
	XPGained  int64
}

func (e WagerSettledEvent) Type() EventType {
	return EventTypeWagerSettled
}

// LevelUpEvent represents one or more levels gained from a settled wager
type LevelUpEvent struct {
	UserID   int64
	GuildID  int64
	OldLevel int
	NewLevel int
}

func (e LevelUpEvent) Type() EventType {
	return EventTypeLevelUp
}

// CrateOpenedEvent represents a crate roll and the items it yielded
type CrateOpenedEvent struct {
	UserID   int64
	GuildID  int64
	CrateKey string
	ItemKeys []string
}

func (e CrateOpenedEvent) Type() EventType {
	return EventTypeCrateOpened
}
