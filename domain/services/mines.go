package services

import (
	"fmt"
	"math"

	"carrotgamba/domain/entities"
)

// Mines hides k mines on a 20-cell board. Each safe reveal raises the
// cash-out multiplier to totalSafe/(totalSafe-safeRevealed); revealing a
// mine forfeits the stake. The round starts suspended on the mine count
// selection.
type Mines struct {
	rng RandomSource
}

// NewMines creates the mines engine.
func NewMines(rng RandomSource) *Mines {
	return &Mines{rng: rng}
}

func (g *Mines) Key() string   { return GameKeyMines }
func (g *Mines) MinBet() int64 { return 10 }

func (g *Mines) Play(bet *entities.Bet, pctx *PlayContext) (*PlayResult, error) {
	state := &entities.MinesState{
		Cells:             make([]entities.MinesCell, entities.MinesGridSize),
		AwaitingSelection: true,
	}
	if pctx != nil && pctx.MineCount > 0 {
		if err := g.placeMines(state, pctx.MineCount); err != nil {
			return nil, err
		}
	}
	return continued(state), nil
}

func (g *Mines) Resume(state entities.GameState, input entities.GameInput) (*PlayResult, error) {
	s, ok := state.(*entities.MinesState)
	if !ok {
		return nil, entities.ErrNoSession
	}

	switch input.Action {
	case entities.ActionSelectMines:
		if !s.AwaitingSelection {
			return nil, fmt.Errorf("mine count already selected")
		}
		if err := g.placeMines(s, input.Value); err != nil {
			return nil, err
		}
		return continued(s), nil

	case entities.ActionReveal:
		if s.AwaitingSelection {
			return nil, fmt.Errorf("select a mine count first")
		}
		if input.Value < 0 || input.Value >= entities.MinesGridSize {
			return nil, fmt.Errorf("cell index must be between 0 and %d", entities.MinesGridSize-1)
		}
		if s.Cells[input.Value] != entities.CellHidden {
			return nil, fmt.Errorf("cell %d is already revealed", input.Value)
		}
		if s.Mines[input.Value] {
			s.Cells[input.Value] = entities.CellMine
			out := entities.LossOutcome(GameKeyMines, 0)
			out.Mines = auxForMines(s, 0, false)
			return terminal(out), nil
		}
		s.Cells[input.Value] = entities.CellSafe
		s.SafeRevealed++
		if s.SafeRevealed == s.TotalSafe() {
			// Board cleared. The final reveal was a certainty so it adds
			// nothing to the multiplier; settle at the pre-reveal value.
			return terminal(g.cashOut(s, float64(s.TotalSafe()))), nil
		}
		return continued(s), nil

	case entities.ActionCashout:
		if s.AwaitingSelection {
			return nil, fmt.Errorf("select a mine count first")
		}
		return terminal(g.cashOut(s, s.Multiplier())), nil

	default:
		return nil, fmt.Errorf("unexpected input %q for mines", input.Action)
	}
}

func (g *Mines) placeMines(s *entities.MinesState, count int) error {
	if count < entities.MinesMinCount || count > entities.MinesMaxCount {
		return fmt.Errorf("mine count must be between %d and %d", entities.MinesMinCount, entities.MinesMaxCount)
	}
	s.Mines = make([]bool, entities.MinesGridSize)
	placed := 0
	for placed < count {
		pos := g.rng.IntN(entities.MinesGridSize)
		if !s.Mines[pos] {
			s.Mines[pos] = true
			placed++
		}
	}
	s.MineCount = count
	s.AwaitingSelection = false
	return nil
}

// cashOut builds a win outcome at the given multiplier. Payouts are
// filled by the caller from the session bet.
func (g *Mines) cashOut(s *entities.MinesState, multiplier float64) *entities.GameOutcome {
	out := entities.WinOutcome(GameKeyMines, 0)
	out.Mines = auxForMines(s, multiplier, true)
	return out
}

// FillPayouts sets payouts from the session bet. A win pays the stake
// scaled by the cash-out multiplier, floored.
func (g *Mines) FillPayouts(outcome *entities.GameOutcome, bet *entities.Bet) {
	switch outcome.Result {
	case entities.ResultWin:
		outcome.BasePayout = int64(math.Floor(float64(bet.Amount) * outcome.Mines.Multiplier))
		outcome.RawPayout = outcome.BasePayout
	case entities.ResultLoss:
		outcome.BasePayout = bet.Amount
		outcome.RawPayout = -bet.Amount
	default:
		outcome.BasePayout = 0
		outcome.RawPayout = 0
	}
}

// Replay auto-plays a round with the same mine count, revealing random
// cells until the multiplier reaches 2x and cashing out there.
func (g *Mines) Replay(bet *entities.Bet, pctx *PlayContext) *entities.GameOutcome {
	count := entities.MinesMinCount
	if pctx != nil && pctx.MineCount > 0 {
		count = pctx.MineCount
	}
	s := &entities.MinesState{
		Cells:             make([]entities.MinesCell, entities.MinesGridSize),
		AwaitingSelection: true,
	}
	if err := g.placeMines(s, count); err != nil {
		// count was validated when the original round started
		g.placeMines(s, entities.MinesMinCount)
	}

	for s.Multiplier() < 2 {
		pos := g.rng.IntN(entities.MinesGridSize)
		if s.Cells[pos] != entities.CellHidden {
			continue
		}
		if s.Mines[pos] {
			s.Cells[pos] = entities.CellMine
			out := entities.LossOutcome(GameKeyMines, bet.Amount)
			out.Mines = auxForMines(s, 0, false)
			return out
		}
		s.Cells[pos] = entities.CellSafe
		s.SafeRevealed++
	}

	out := g.cashOut(s, s.Multiplier())
	g.FillPayouts(out, bet)
	return out
}

func auxForMines(s *entities.MinesState, multiplier float64, cashedOut bool) *entities.MinesOutcome {
	return &entities.MinesOutcome{
		MineCount:    s.MineCount,
		SafeRevealed: s.SafeRevealed,
		Cells:        s.Cells,
		Multiplier:   multiplier,
		CashedOut:    cashedOut,
	}
}
