package services

import (
	"fmt"

	"carrotgamba/domain/entities"
)

// NumberGuess pays out when the player's pick matches a uniform draw in
// [1, maxNumber]. With the oracle item active the draw happens first and
// the round suspends with the winner hidden among decoy candidates until
// the player locks in a guess.
type NumberGuess struct {
	rng        RandomSource
	maxNumber  int
	oracleSize int // candidates shown by the oracle, winner included
}

// NewNumberGuess creates the number guess engine with the default range.
func NewNumberGuess(rng RandomSource) *NumberGuess {
	return &NumberGuess{rng: rng, maxNumber: 10, oracleSize: 5}
}

func (g *NumberGuess) Key() string   { return GameKeyNumberGuess }
func (g *NumberGuess) MinBet() int64 { return 10 }

// MaxNumber returns the top of the guessing range.
func (g *NumberGuess) MaxNumber() int { return g.maxNumber }

func (g *NumberGuess) validateGuess(guess int) error {
	if guess < 1 || guess > g.maxNumber {
		return fmt.Errorf("guess must be between 1 and %d", g.maxNumber)
	}
	return nil
}

func (g *NumberGuess) Play(bet *entities.Bet, pctx *PlayContext) (*PlayResult, error) {
	winning := g.rng.IntN(g.maxNumber) + 1

	if pctx != nil && pctx.Oracle {
		return continued(&entities.NumberGuessState{
			WinningNumber: winning,
			Candidates:    g.oracleCandidates(winning),
		}), nil
	}

	if pctx == nil || !pctx.HasGuess {
		return nil, fmt.Errorf("number guess requires a guess between 1 and %d", g.maxNumber)
	}
	if err := g.validateGuess(pctx.Guess); err != nil {
		return nil, err
	}
	return terminal(g.resolve(bet, pctx.Guess, winning, nil)), nil
}

func (g *NumberGuess) Resume(state entities.GameState, input entities.GameInput) (*PlayResult, error) {
	s, ok := state.(*entities.NumberGuessState)
	if !ok {
		return nil, entities.ErrNoSession
	}
	if input.Action != entities.ActionGuess {
		return nil, fmt.Errorf("unexpected input %q for number guess", input.Action)
	}
	if err := g.validateGuess(input.Value); err != nil {
		return nil, err
	}
	// The bet rides on the session; Resume only needs the guess. The
	// wager service passes the session bet back through the outcome.
	return terminal(g.resolve(nil, input.Value, s.WinningNumber, s.Candidates)), nil
}

// resolve builds the outcome. bet may be nil on the oracle path; the
// caller owns filling payouts from the session bet in that case.
func (g *NumberGuess) resolve(bet *entities.Bet, guess, winning int, candidates []int) *entities.GameOutcome {
	aux := &entities.NumberGuessOutcome{
		Guess:         guess,
		WinningNumber: winning,
		Candidates:    candidates,
	}
	var outcome *entities.GameOutcome
	amount := int64(0)
	if bet != nil {
		amount = bet.Amount
	}
	if guess == winning {
		outcome = entities.WinOutcome(GameKeyNumberGuess, amount*int64(g.maxNumber-1))
	} else {
		outcome = entities.LossOutcome(GameKeyNumberGuess, amount)
	}
	outcome.NumberGuess = aux
	return outcome
}

// FillPayouts recomputes payouts for an outcome resolved without a bet
// (oracle resume path).
func (g *NumberGuess) FillPayouts(outcome *entities.GameOutcome, bet *entities.Bet) {
	if outcome.Result == entities.ResultWin {
		outcome.BasePayout = bet.Amount * int64(g.maxNumber-1)
		outcome.RawPayout = outcome.BasePayout
	} else {
		outcome.BasePayout = bet.Amount
		outcome.RawPayout = -bet.Amount
	}
}

func (g *NumberGuess) Replay(bet *entities.Bet, pctx *PlayContext) *entities.GameOutcome {
	guess := 0
	if pctx != nil && pctx.HasGuess {
		guess = pctx.Guess
	} else {
		guess = g.rng.IntN(g.maxNumber) + 1
	}
	winning := g.rng.IntN(g.maxNumber) + 1
	return g.resolve(bet, guess, winning, nil)
}

// oracleCandidates returns oracleSize numbers in random order, the winner
// guaranteed among them.
func (g *NumberGuess) oracleCandidates(winning int) []int {
	candidates := []int{winning}
	used := map[int]bool{winning: true}
	for len(candidates) < g.oracleSize {
		n := g.rng.IntN(g.maxNumber) + 1
		if !used[n] {
			used[n] = true
			candidates = append(candidates, n)
		}
	}
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates
}
