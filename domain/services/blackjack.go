package services

import (
	"fmt"

	"carrotgamba/domain/entities"
)

// Blackjack deals from a freshly shuffled 52-card shoe each round. The
// player acts through hit/stand inputs on a suspended state; the dealer
// draws to 17 and stands on all 17s. A natural pays 3:2.
type Blackjack struct {
	rng RandomSource
}

// NewBlackjack creates the blackjack engine.
func NewBlackjack(rng RandomSource) *Blackjack {
	return &Blackjack{rng: rng}
}

func (g *Blackjack) Key() string   { return GameKeyBlackjack }
func (g *Blackjack) MinBet() int64 { return 10 }

func (g *Blackjack) shuffledDeck() []entities.Card {
	deck := entities.NewDeck()
	g.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

func draw(deck []entities.Card) (entities.Card, []entities.Card) {
	return deck[0], deck[1:]
}

func (g *Blackjack) Play(bet *entities.Bet, pctx *PlayContext) (*PlayResult, error) {
	deck := g.shuffledDeck()

	var player, dealer entities.Hand
	var c entities.Card
	for i := 0; i < 2; i++ {
		c, deck = draw(deck)
		player = append(player, c)
		c, deck = draw(deck)
		dealer = append(dealer, c)
	}

	// Naturals resolve before any player action.
	if player.IsBlackjack() {
		if dealer.IsBlackjack() {
			return terminal(g.outcome(bet, player, dealer, true)), nil
		}
		out := entities.WinOutcome(GameKeyBlackjack, bet.Amount*3/2)
		out.Blackjack = auxFor(player, dealer, true)
		return terminal(out), nil
	}

	state := &entities.BlackjackState{
		Deck:       deck,
		PlayerHand: player,
		DealerHand: dealer,
	}
	if pctx != nil && pctx.XRay {
		state.RevealDealer = true
	}
	return continued(state), nil
}

func (g *Blackjack) Resume(state entities.GameState, input entities.GameInput) (*PlayResult, error) {
	s, ok := state.(*entities.BlackjackState)
	if !ok {
		return nil, entities.ErrNoSession
	}

	switch input.Action {
	case entities.ActionHit:
		var c entities.Card
		c, s.Deck = draw(s.Deck)
		s.PlayerHand = append(s.PlayerHand, c)
		if s.PlayerHand.IsBust() {
			out := entities.LossOutcome(GameKeyBlackjack, 0)
			out.Blackjack = auxFor(s.PlayerHand, s.DealerHand, false)
			return terminal(out), nil
		}
		if s.PlayerHand.Value() == 21 {
			return terminal(g.playDealer(s)), nil
		}
		return continued(s), nil

	case entities.ActionStand:
		return terminal(g.playDealer(s)), nil

	default:
		return nil, fmt.Errorf("unexpected input %q for blackjack", input.Action)
	}
}

// playDealer completes the dealer's hand and resolves the round. Payouts
// are filled by the caller from the session bet.
func (g *Blackjack) playDealer(s *entities.BlackjackState) *entities.GameOutcome {
	for s.DealerHand.Value() < 17 {
		var c entities.Card
		c, s.Deck = draw(s.Deck)
		s.DealerHand = append(s.DealerHand, c)
	}
	return g.outcome(nil, s.PlayerHand, s.DealerHand, false)
}

// outcome compares completed hands. bet may be nil on the resume path.
func (g *Blackjack) outcome(bet *entities.Bet, player, dealer entities.Hand, natural bool) *entities.GameOutcome {
	amount := int64(0)
	if bet != nil {
		amount = bet.Amount
	}

	pv, dv := player.Value(), dealer.Value()
	var out *entities.GameOutcome
	switch {
	case player.IsBust():
		out = entities.LossOutcome(GameKeyBlackjack, amount)
	case dealer.IsBust() || pv > dv:
		out = entities.WinOutcome(GameKeyBlackjack, amount)
	case pv < dv:
		out = entities.LossOutcome(GameKeyBlackjack, amount)
	default:
		out = entities.PushOutcome(GameKeyBlackjack)
	}
	out.Blackjack = auxFor(player, dealer, natural)
	return out
}

// FillPayouts recomputes payouts for an outcome resolved without a bet.
func (g *Blackjack) FillPayouts(outcome *entities.GameOutcome, bet *entities.Bet) {
	switch outcome.Result {
	case entities.ResultWin:
		if outcome.Blackjack != nil && outcome.Blackjack.Natural {
			outcome.BasePayout = bet.Amount * 3 / 2
		} else {
			outcome.BasePayout = bet.Amount
		}
		outcome.RawPayout = outcome.BasePayout
	case entities.ResultLoss:
		outcome.BasePayout = bet.Amount
		outcome.RawPayout = -bet.Amount
	default:
		outcome.BasePayout = 0
		outcome.RawPayout = 0
	}
}

// Replay auto-plays a fresh round with basic fixed strategy: the player
// draws to 17 like the dealer does.
func (g *Blackjack) Replay(bet *entities.Bet, _ *PlayContext) *entities.GameOutcome {
	deck := g.shuffledDeck()

	var player, dealer entities.Hand
	var c entities.Card
	for i := 0; i < 2; i++ {
		c, deck = draw(deck)
		player = append(player, c)
		c, deck = draw(deck)
		dealer = append(dealer, c)
	}

	if player.IsBlackjack() {
		if dealer.IsBlackjack() {
			return g.outcome(bet, player, dealer, true)
		}
		out := entities.WinOutcome(GameKeyBlackjack, bet.Amount*3/2)
		out.Blackjack = auxFor(player, dealer, true)
		return out
	}

	for player.Value() < 17 {
		c, deck = draw(deck)
		player = append(player, c)
	}
	if !player.IsBust() {
		for dealer.Value() < 17 {
			c, deck = draw(deck)
			dealer = append(dealer, c)
		}
	}
	return g.outcome(bet, player, dealer, false)
}

func auxFor(player, dealer entities.Hand, natural bool) *entities.BlackjackOutcome {
	return &entities.BlackjackOutcome{
		PlayerHand:  player,
		DealerHand:  dealer,
		PlayerValue: player.Value(),
		DealerValue: dealer.Value(),
		Natural:     natural,
	}
}
