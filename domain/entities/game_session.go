package entities

// InputAction identifies a player input to an interactive game session.
type InputAction string

const (
	ActionGuess       InputAction = "guess"        // number guess lock-in
	ActionHit         InputAction = "hit"          // blackjack hit
	ActionStand       InputAction = "stand"        // blackjack stand
	ActionSelectMines InputAction = "select_mines" // mines count selection
	ActionReveal      InputAction = "reveal"       // mines cell reveal
	ActionCashout     InputAction = "cashout"      // mines cash-out
)

// GameInput is one player input event for a suspended session.
// Value carries the guess, mine count or cell index where relevant.
type GameInput struct {
	Action InputAction
	Value  int
}

// GameState is the suspended intermediate state of an interactive game.
// Concrete states are owned exclusively by the session that created them.
type GameState interface {
	StateGameKey() string
}

// BlackjackState is a blackjack round suspended for hit/stand input.
type BlackjackState struct {
	Deck         []Card
	PlayerHand   Hand
	DealerHand   Hand
	RevealDealer bool // x-ray vision: hole card visible to the player
}

func (s *BlackjackState) StateGameKey() string { return "blackjack" }

// MinesState is a mines round suspended for selection, reveal or cash-out.
type MinesState struct {
	Cells        []MinesCell
	Mines        []bool // true = mine at index; hidden from the renderer
	MineCount    int
	SafeRevealed int
	// AwaitingSelection is true before the player has picked a mine count.
	AwaitingSelection bool
}

func (s *MinesState) StateGameKey() string { return "mines" }

// TotalSafe returns the number of non-mine cells on the board.
func (s *MinesState) TotalSafe() int {
	return MinesGridSize - s.MineCount
}

// Multiplier returns the current cash-out multiplier: the inverse of the
// survival probability over the reveals made so far.
func (s *MinesState) Multiplier() float64 {
	return float64(s.TotalSafe()) / float64(s.TotalSafe()-s.SafeRevealed)
}

// NumberGuessState is a number-guess round suspended for the guess while
// the oracle's candidate numbers are on display. The winning number is
// already drawn and does not change.
type NumberGuessState struct {
	WinningNumber int
	Candidates    []int
}

func (s *NumberGuessState) StateGameKey() string { return "numberguess" }

// WagerUpdate is the result of one wager input event: either a suspended
// session awaiting more input, or a terminal settlement.
type WagerUpdate struct {
	SessionID string
	Pending   bool
	State     GameState
	Settlement *WagerSettlement
}

// WagerSettlement is the terminal result of a wager after the item effect
// pipeline, balance settlement and progression have been applied.
type WagerSettlement struct {
	Outcome    *GameOutcome
	Breakdown  []EffectStep
	NewBalance int64
	XPGained   int64
	LevelUp    *LevelUpResult
}
