package entities

import (
	"errors"
	"time"
)

// Account represents a user's guild-scoped gambling account.
type Account struct {
	DiscordID               int64      `db:"discord_id"`
	GuildID                 int64      `db:"guild_id"`
	Username                string     `db:"username"`
	Balance                 int64      `db:"balance"`
	Level                   int        `db:"level"`
	XP                      int64      `db:"xp"`
	PassiveMultiplierPercent int       `db:"passive_multiplier_percent"`
	LastDailyClaim          *time.Time `db:"last_daily_claim"`
	LastWeeklyClaim         *time.Time `db:"last_weekly_claim"`
	CreatedAt               time.Time  `db:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at"`
}

// CanAfford checks if the account has sufficient balance for an amount
func (a *Account) CanAfford(amount int64) bool {
	return a.Balance >= amount
}

// ValidateBetAmount checks that an amount is positive and affordable
func (a *Account) ValidateBetAmount(amount int64) error {
	if amount <= 0 {
		return errors.New("bet amount must be positive")
	}
	if !a.CanAfford(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// CanClaimDaily reports whether the daily bonus cooldown has elapsed
func (a *Account) CanClaimDaily(now time.Time, cooldown time.Duration) bool {
	return a.LastDailyClaim == nil || now.Sub(*a.LastDailyClaim) >= cooldown
}

// CanClaimWeekly reports whether the weekly bonus cooldown has elapsed
func (a *Account) CanClaimWeekly(now time.Time, cooldown time.Duration) bool {
	return a.LastWeeklyClaim == nil || now.Sub(*a.LastWeeklyClaim) >= cooldown
}
