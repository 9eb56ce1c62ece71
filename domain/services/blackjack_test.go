package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrotgamba/domain/entities"
)

func card(rank entities.Rank) entities.Card {
	return entities.Card{Suit: entities.Spades, Rank: rank}
}

func TestBlackjack_DealSuspendsForPlayerInput(t *testing.T) {
	t.Parallel()

	// No-op shuffle deals from a fresh deck in order: player A,3 dealer 2,4.
	game := NewBlackjack(&scriptedRandom{})
	bet := &entities.Bet{Amount: 100, GameKey: GameKeyBlackjack}

	result, err := game.Play(bet, nil)
	require.NoError(t, err)
	require.Nil(t, result.Outcome)

	state, ok := result.State.(*entities.BlackjackState)
	require.True(t, ok)
	assert.Equal(t, 14, state.PlayerHand.Value())
	assert.Equal(t, 6, state.DealerHand.Value())
	assert.False(t, state.RevealDealer)
	assert.Len(t, state.Deck, 48)
}

func TestBlackjack_XRaySetsRevealFlag(t *testing.T) {
	t.Parallel()

	game := NewBlackjack(&scriptedRandom{})
	bet := &entities.Bet{Amount: 100, GameKey: GameKeyBlackjack}

	result, err := game.Play(bet, &PlayContext{XRay: true})
	require.NoError(t, err)
	state := result.State.(*entities.BlackjackState)
	assert.True(t, state.RevealDealer)
	// The hole card is present in the state either way.
	assert.Len(t, state.DealerHand, 2)
}

func TestBlackjack_HitThenStandResolvesAgainstDealer(t *testing.T) {
	t.Parallel()

	game := NewBlackjack(&scriptedRandom{})
	bet := &entities.Bet{Amount: 100, GameKey: GameKeyBlackjack}

	result, err := game.Play(bet, nil)
	require.NoError(t, err)
	state := result.State.(*entities.BlackjackState)

	// Player A,3 hits into 5: value 19, still suspended.
	res, err := game.Resume(state, entities.GameInput{Action: entities.ActionHit})
	require.NoError(t, err)
	require.Nil(t, res.Outcome)
	assert.Equal(t, 19, state.PlayerHand.Value())

	// Stand: dealer 2,4 draws 6 then 7 and stops on 19. Push.
	res, err = game.Resume(state, entities.GameInput{Action: entities.ActionStand})
	require.NoError(t, err)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, entities.ResultPush, res.Outcome.Result)
	assert.Equal(t, 19, res.Outcome.Blackjack.DealerValue)

	game.FillPayouts(res.Outcome, bet)
	assert.Equal(t, int64(0), res.Outcome.RawPayout)
}

func TestBlackjack_HitBustLoses(t *testing.T) {
	t.Parallel()

	game := NewBlackjack(&scriptedRandom{})
	bet := &entities.Bet{Amount: 100, GameKey: GameKeyBlackjack}
	state := &entities.BlackjackState{
		Deck:       []entities.Card{card(entities.RankTen)},
		PlayerHand: entities.Hand{card(entities.RankKing), card(entities.RankQueen)},
		DealerHand: entities.Hand{card(entities.RankSeven), card(entities.RankNine)},
	}

	res, err := game.Resume(state, entities.GameInput{Action: entities.ActionHit})
	require.NoError(t, err)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, entities.ResultLoss, res.Outcome.Result)

	game.FillPayouts(res.Outcome, bet)
	assert.Equal(t, int64(-100), res.Outcome.RawPayout)
}

func TestBlackjack_TwentyOneAfterHitAutoResolves(t *testing.T) {
	t.Parallel()

	game := NewBlackjack(&scriptedRandom{})
	state := &entities.BlackjackState{
		Deck: []entities.Card{card(entities.RankFive)},
		PlayerHand: entities.Hand{
			{Suit: entities.Hearts, Rank: entities.RankAce},
			card(entities.RankFive),
		},
		DealerHand: entities.Hand{card(entities.RankKing), card(entities.RankNine)},
	}

	res, err := game.Resume(state, entities.GameInput{Action: entities.ActionHit})
	require.NoError(t, err)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, 21, res.Outcome.Blackjack.PlayerValue)
	assert.Equal(t, entities.ResultWin, res.Outcome.Result)
}

func TestBlackjack_DealerDrawBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		dealer      entities.Hand
		deck        []entities.Card
		wantValue  int
		wantCards  int
		wantResult entities.GameResult
	}{
		{
			name:       "sixteen draws once to seventeen",
			dealer:     entities.Hand{card(entities.RankTen), card(entities.RankSix)},
			deck:       []entities.Card{{Suit: entities.Hearts, Rank: entities.RankAce}},
			wantValue:  17,
			wantCards:  3,
			wantResult: entities.ResultWin, // player stands on 18
		},
		{
			name:       "seventeen never draws",
			dealer:     entities.Hand{card(entities.RankTen), card(entities.RankSeven)},
			deck:       []entities.Card{card(entities.RankFive)},
			wantValue:  17,
			wantCards:  2,
			wantResult: entities.ResultWin,
		},
		{
			name:       "dealer bust is a player win",
			dealer:     entities.Hand{card(entities.RankTen), card(entities.RankSix)},
			deck:       []entities.Card{card(entities.RankKing)},
			wantValue:  26,
			wantCards:  3,
			wantResult: entities.ResultWin,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			game := NewBlackjack(&scriptedRandom{})
			state := &entities.BlackjackState{
				Deck:       tt.deck,
				PlayerHand: entities.Hand{card(entities.RankTen), card(entities.RankEight)},
				DealerHand: tt.dealer,
			}

			res, err := game.Resume(state, entities.GameInput{Action: entities.ActionStand})
			require.NoError(t, err)
			require.NotNil(t, res.Outcome)
			assert.Equal(t, tt.wantValue, res.Outcome.Blackjack.DealerValue)
			assert.Len(t, res.Outcome.Blackjack.DealerHand, tt.wantCards)
			assert.Equal(t, tt.wantResult, res.Outcome.Result)
		})
	}
}

func TestBlackjack_NaturalPayouts(t *testing.T) {
	t.Parallel()

	game := NewBlackjack(&scriptedRandom{})
	bet := &entities.Bet{Amount: 101, GameKey: GameKeyBlackjack}
	natural := entities.Hand{
		{Suit: entities.Hearts, Rank: entities.RankAce},
		card(entities.RankKing),
	}

	// Player natural with no dealer natural pays 3:2, floored.
	out := entities.WinOutcome(GameKeyBlackjack, 0)
	out.Blackjack = &entities.BlackjackOutcome{Natural: true}
	game.FillPayouts(out, bet)
	assert.Equal(t, int64(151), out.BasePayout)
	assert.Equal(t, int64(151), out.RawPayout)

	// Both naturals push: the bonus never pays against a dealer natural.
	pushOut := game.outcome(bet, natural, natural, true)
	assert.Equal(t, entities.ResultPush, pushOut.Result)
	assert.Equal(t, int64(0), pushOut.RawPayout)
}
