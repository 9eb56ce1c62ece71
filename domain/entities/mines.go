package entities

// MinesCell is the state of one cell on the mines grid.
type MinesCell int

const (
	CellHidden MinesCell = iota
	CellSafe             // revealed, no mine
	CellMine             // revealed mine (ends the round)
)

// MinesGridSize is the fixed number of cells on the board.
const MinesGridSize = 20

// MinesMinCount and MinesMaxCount bound the player's mine selection.
const (
	MinesMinCount = 1
	MinesMaxCount = 10
)
