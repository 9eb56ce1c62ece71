package services

import (
	"fmt"

	"carrotgamba/domain/entities"
)

// ItemPipeline applies active item modifiers to a terminal game outcome.
// The step order is fixed and game-independent: second chance can flip a
// loss into a win, so it must run before the win and loss modifiers.
// Consumption rules follow each item's contract, not whether its
// condition fired.
type ItemPipeline struct{}

// NewItemPipeline creates the pipeline.
func NewItemPipeline() *ItemPipeline {
	return &ItemPipeline{}
}

// Apply runs the modifier steps over the outcome and returns the final
// outcome plus the breakdown ledger. The active set is mutated as items
// are consumed. Timeout outcomes must not be passed in; the caller skips
// the pipeline entirely on timeout.
func (p *ItemPipeline) Apply(
	outcome *entities.GameOutcome,
	bet *entities.Bet,
	active *entities.ActiveItemSet,
	game Game,
	pctx *PlayContext,
) (*entities.GameOutcome, []entities.EffectStep) {
	breakdown := make([]entities.EffectStep, 0, 4)

	// Second chance: burns a use whenever active, replays only on loss.
	if active.Has(entities.ItemSecondChance) {
		active.Consume(entities.ItemSecondChance, 1)
		if outcome.Result == entities.ResultLoss {
			outcome = game.Replay(bet, pctx)
			if outcome.Result == entities.ResultWin {
				outcome.RawPayout = outcome.RawPayout / 2
				breakdown = append(breakdown, entities.EffectStep{Label: "Second Chance", Calc: "x 0.5"})
			}
		}
	}

	// Loss cushion: halves the loss magnitude, consumed either way.
	if active.Has(entities.ItemLossCushion) {
		if outcome.Result == entities.ResultLoss {
			outcome.RawPayout = -((-outcome.RawPayout) / 2)
			breakdown = append(breakdown, entities.EffectStep{Label: "Loss Cushion", Calc: "x 0.5"})
		}
		active.Consume(entities.ItemLossCushion, 1)
	}

	// Jackpot juice: doubles a win, consumed either way.
	if active.Has(entities.ItemJackpotJuice) {
		if outcome.Result == entities.ResultWin {
			outcome.RawPayout *= 2
			breakdown = append(breakdown, entities.EffectStep{Label: "Jackpot Juice", Calc: "x 2"})
		}
		active.Consume(entities.ItemJackpotJuice, 1)
	}

	// Carrot surge: +10% on a win, one use burned per wager regardless.
	if active.Has(entities.ItemCarrotSurge) {
		if outcome.Result == entities.ResultWin {
			outcome.RawPayout = outcome.RawPayout * 11 / 10
			breakdown = append(breakdown, entities.EffectStep{
				Label: fmt.Sprintf("Carrot Surge (%d)", active.Remaining(entities.ItemCarrotSurge)-1),
				Calc:  "+ 10%",
			})
		}
		active.Consume(entities.ItemCarrotSurge, 1)
	}

	return outcome, breakdown
}
