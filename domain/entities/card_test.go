package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandValue_FaceCards(t *testing.T) {
	hand := Hand{
		{Suit: Spades, Rank: RankKing},
		{Suit: Hearts, Rank: RankQueen},
	}
	assert.Equal(t, 20, hand.Value())
}

func TestHandValue_AceCountsEleven(t *testing.T) {
	hand := Hand{
		{Suit: Spades, Rank: RankAce},
		{Suit: Hearts, Rank: RankSeven},
	}
	assert.Equal(t, 18, hand.Value())
}

func TestHandValue_AceCollapsesToOne(t *testing.T) {
	hand := Hand{
		{Suit: Spades, Rank: RankAce},
		{Suit: Hearts, Rank: RankSeven},
		{Suit: Clubs, Rank: RankNine},
	}
	// 11 + 7 + 9 = 27 busts, so the ace drops to 1
	assert.Equal(t, 17, hand.Value())
}

func TestHandValue_MultipleAcesCollapseGreedily(t *testing.T) {
	hand := Hand{
		{Suit: Spades, Rank: RankAce},
		{Suit: Hearts, Rank: RankAce},
		{Suit: Clubs, Rank: RankAce},
		{Suit: Diamonds, Rank: RankEight},
	}
	// A+A+A+8: one ace stays 11 (11+1+1+8=21)
	assert.Equal(t, 21, hand.Value())
}

func TestHandValue_TwentyOneWithThreeCardsIsNotBlackjack(t *testing.T) {
	hand := Hand{
		{Suit: Spades, Rank: RankSeven},
		{Suit: Hearts, Rank: RankSeven},
		{Suit: Clubs, Rank: RankSeven},
	}
	assert.Equal(t, 21, hand.Value())
	assert.False(t, hand.IsBlackjack())
}

func TestHandIsBlackjack(t *testing.T) {
	hand := Hand{
		{Suit: Spades, Rank: RankAce},
		{Suit: Hearts, Rank: RankKing},
	}
	assert.True(t, hand.IsBlackjack())
	assert.False(t, hand.IsBust())
}

func TestHandIsBust(t *testing.T) {
	hand := Hand{
		{Suit: Spades, Rank: RankKing},
		{Suit: Hearts, Rank: RankQueen},
		{Suit: Clubs, Rank: RankFive},
	}
	assert.True(t, hand.IsBust())
}

func TestNewDeckHasFiftyTwoDistinctCards(t *testing.T) {
	deck := NewDeck()
	assert.Len(t, deck, 52)

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
}
