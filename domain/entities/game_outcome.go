package entities

// GameResult is the terminal category of a game round.
type GameResult string

const (
	ResultWin     GameResult = "win"
	ResultLoss    GameResult = "loss"
	ResultPush    GameResult = "push"
	ResultTimeout GameResult = "timeout"
)

// IsTerminalPlayable reports whether the result came from actual play
// rather than a forced timeout.
func (r GameResult) IsTerminalPlayable() bool {
	return r == ResultWin || r == ResultLoss || r == ResultPush
}

// GameOutcome is the raw result of one game round before item modifiers.
//
// BasePayout is the full amount that would be credited on a clean win,
// always non-negative. RawPayout is the signed balance delta:
// +BasePayout on win, -bet on loss, 0 on push and timeout.
type GameOutcome struct {
	GameKey    string
	Result     GameResult
	BasePayout int64
	RawPayout  int64

	// Game-specific auxiliary state, populated by the engine that
	// produced the outcome. Only the fields relevant to GameKey are set.
	Blackjack   *BlackjackOutcome
	NumberGuess *NumberGuessOutcome
	Mines       *MinesOutcome
}

// BlackjackOutcome carries the final hands of a blackjack round.
type BlackjackOutcome struct {
	PlayerHand  Hand
	DealerHand  Hand
	PlayerValue int
	DealerValue int
	Natural     bool
}

// NumberGuessOutcome carries the guess and the drawn number.
type NumberGuessOutcome struct {
	Guess         int
	WinningNumber int
	// Candidates is the oracle-revealed set (winner plus decoys);
	// empty when no oracle was active.
	Candidates []int
}

// MinesOutcome carries the revealed grid state of a mines round.
type MinesOutcome struct {
	MineCount    int
	SafeRevealed int
	Cells        []MinesCell
	Multiplier   float64
	CashedOut    bool
}

// WinOutcome builds a winning outcome with the standard payout convention.
func WinOutcome(gameKey string, basePayout int64) *GameOutcome {
	return &GameOutcome{
		GameKey:    gameKey,
		Result:     ResultWin,
		BasePayout: basePayout,
		RawPayout:  basePayout,
	}
}

// LossOutcome builds a losing outcome for a bet amount.
func LossOutcome(gameKey string, betAmount int64) *GameOutcome {
	return &GameOutcome{
		GameKey:    gameKey,
		Result:     ResultLoss,
		BasePayout: betAmount,
		RawPayout:  -betAmount,
	}
}

// PushOutcome builds a push: stake returned, nothing won.
func PushOutcome(gameKey string) *GameOutcome {
	return &GameOutcome{GameKey: gameKey, Result: ResultPush}
}

// TimeoutOutcome builds a forced timeout: stake returned.
func TimeoutOutcome(gameKey string) *GameOutcome {
	return &GameOutcome{GameKey: gameKey, Result: ResultTimeout}
}
