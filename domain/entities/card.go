package entities

// Suit is one of the four french suits.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Rank is a card rank; Jack through King count 10, Ace counts 11 or 1.
type Rank int

const (
	RankAce   Rank = 1
	RankTwo   Rank = 2
	RankThree Rank = 3
	RankFour  Rank = 4
	RankFive  Rank = 5
	RankSix   Rank = 6
	RankSeven Rank = 7
	RankEight Rank = 8
	RankNine  Rank = 9
	RankTen   Rank = 10
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
)

// Card is a single playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	default:
		return "♠"
	}
}

func (r Rank) String() string {
	switch r {
	case RankAce:
		return "A"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	default:
		return map[Rank]string{
			RankTwo: "2", RankThree: "3", RankFour: "4", RankFive: "5",
			RankSix: "6", RankSeven: "7", RankEight: "8", RankNine: "9",
			RankTen: "10",
		}[r]
	}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// NewDeck returns an unshuffled standard 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := Clubs; s <= Spades; s++ {
		for r := RankAce; r <= RankKing; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Hand is an ordered set of dealt cards.
type Hand []Card

// Value computes the blackjack value of the hand. Aces count 11 and
// collapse to 1 one at a time while the total would bust.
func (h Hand) Value() int {
	value := 0
	aces := 0
	for _, c := range h {
		switch {
		case c.Rank >= RankJack:
			value += 10
		case c.Rank == RankAce:
			value += 11
			aces++
		default:
			value += int(c.Rank)
		}
		for value > 21 && aces > 0 {
			value -= 10
			aces--
		}
	}
	return value
}

// IsBlackjack reports a natural 21: exactly two cards totalling 21.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == 21
}

// IsBust reports a hand value over 21.
func (h Hand) IsBust() bool {
	return h.Value() > 21
}
