package entities

import "errors"

var (
	// ErrInsufficientFunds is returned when a debit would drive a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound is returned when no account exists for a (user, guild) pair.
	ErrAccountNotFound = errors.New("account not found")

	// ErrWagerInProgress is returned when a user already has an in-flight wager.
	ErrWagerInProgress = errors.New("a wager is already in progress")

	// ErrNoSession is returned when input arrives for a session that does not exist
	// or has already been resolved.
	ErrNoSession = errors.New("no active game session")

	// ErrUnknownGame is returned for a game key outside the registry.
	ErrUnknownGame = errors.New("unknown game")

	// ErrUnknownItem is returned for an item key outside the catalog.
	ErrUnknownItem = errors.New("unknown item")

	// ErrUnknownCrate is returned for a crate key outside the catalog.
	ErrUnknownCrate = errors.New("unknown crate")

	// ErrItemAlreadyActive is returned when activating an item that is already
	// in the user's active set.
	ErrItemAlreadyActive = errors.New("item is already active")

	// ErrItemNotOwned is returned when consuming an inventory item the user
	// does not have.
	ErrItemNotOwned = errors.New("item not in inventory")
)
