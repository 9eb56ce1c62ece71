package services

import (
	"sort"

	"carrotgamba/domain/entities"
)

// Game keys for the closed variant set.
const (
	GameKeyCoinToss    = "cointoss"
	GameKeyNumberGuess = "numberguess"
	GameKeyBlackjack   = "blackjack"
	GameKeyMines       = "mines"
)

// PlayContext carries everything an active item can influence before a
// round resolves, plus per-game start parameters. Engines never read the
// active set directly.
type PlayContext struct {
	Guess    int  // number guess selection
	HasGuess bool
	Oracle   bool // number oracle: reveal candidates before lock-in
	XRay     bool // x-ray vision: expose the dealer's hole card
	// MineCount is the mine selection carried into a second-chance
	// replay; zero means not yet chosen.
	MineCount int
}

// PlayResult is either a terminal outcome or a continued session state,
// never both.
type PlayResult struct {
	Outcome *entities.GameOutcome
	State   entities.GameState
}

func terminal(outcome *entities.GameOutcome) *PlayResult {
	return &PlayResult{Outcome: outcome}
}

func continued(state entities.GameState) *PlayResult {
	return &PlayResult{State: state}
}

// Game is the contract every game variant implements. Engines compute
// results and payouts only; they never touch balances or inventories.
type Game interface {
	Key() string
	MinBet() int64

	// Play starts a round. Interactive variants may return a continued
	// state to be fed back through Resume.
	Play(bet *entities.Bet, pctx *PlayContext) (*PlayResult, error)

	// Resume applies one player input to a suspended state.
	Resume(state entities.GameState, input entities.GameInput) (*PlayResult, error)

	// Replay resolves a full fresh round without interaction, used by the
	// second-chance item to substitute a new outcome for a loss.
	Replay(bet *entities.Bet, pctx *PlayContext) *entities.GameOutcome

	// FillPayouts sets the payout fields on an outcome that was resolved
	// through Resume, where the engine does not hold the bet.
	FillPayouts(outcome *entities.GameOutcome, bet *entities.Bet)
}

// GameRegistry dispatches game keys to engines. The variant set is closed:
// games are registered once at construction, lookups are read-only.
type GameRegistry struct {
	games map[string]Game
}

// NewGameRegistry builds the registry with all four variants.
func NewGameRegistry(rng RandomSource) *GameRegistry {
	r := &GameRegistry{games: make(map[string]Game)}
	r.register(NewCoinToss(rng))
	r.register(NewNumberGuess(rng))
	r.register(NewBlackjack(rng))
	r.register(NewMines(rng))
	return r
}

func (r *GameRegistry) register(g Game) {
	r.games[g.Key()] = g
}

// Get returns the engine for a key, or ErrUnknownGame.
func (r *GameRegistry) Get(key string) (Game, error) {
	g, ok := r.games[key]
	if !ok {
		return nil, entities.ErrUnknownGame
	}
	return g, nil
}

// Keys lists registered game keys in stable order.
func (r *GameRegistry) Keys() []string {
	keys := make([]string, 0, len(r.games))
	for k := range r.games {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
