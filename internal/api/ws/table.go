package ws

import (
	"checkers/internal/game"
	"checkers/internal/table"
)

// Table is the part of *table.Table the hub drives from client messages.
type Table interface {
	State() table.State
	Click(c game.Cell) (table.ClickResult, error)
	ClearSelection() table.State
	Reset() table.State
}
