package services

import "carrotgamba/domain/entities"

// CoinToss is a single even-odds draw: win pays the stake, loss takes it.
type CoinToss struct {
	rng RandomSource
}

// NewCoinToss creates the coin toss engine.
func NewCoinToss(rng RandomSource) *CoinToss {
	return &CoinToss{rng: rng}
}

func (g *CoinToss) Key() string   { return GameKeyCoinToss }
func (g *CoinToss) MinBet() int64 { return 10 }

func (g *CoinToss) Play(bet *entities.Bet, pctx *PlayContext) (*PlayResult, error) {
	return terminal(g.Replay(bet, pctx)), nil
}

func (g *CoinToss) Resume(state entities.GameState, input entities.GameInput) (*PlayResult, error) {
	return nil, entities.ErrNoSession
}

func (g *CoinToss) FillPayouts(outcome *entities.GameOutcome, bet *entities.Bet) {}

func (g *CoinToss) Replay(bet *entities.Bet, _ *PlayContext) *entities.GameOutcome {
	if g.rng.Float64() >= 0.5 {
		return entities.WinOutcome(GameKeyCoinToss, bet.Amount)
	}
	return entities.LossOutcome(GameKeyCoinToss, bet.Amount)
}
