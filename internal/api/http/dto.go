package http

import "checkers/internal/game"

// CellRequest is the payload for /select and /click.
type CellRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (r CellRequest) Cell() game.Cell {
	return game.Cell{Row: *r.Row, Col: *r.Col}
}

// MoveRequest is the payload for /move.
type MoveRequest struct {
	From *game.Cell `json:"from" binding:"required"`
	To   *game.Cell `json:"to" binding:"required"`
}

// LegalMovesQuery binds /legal-moves?row=&col=.
type LegalMovesQuery struct {
	Row *int `form:"row" binding:"required"`
	Col *int `form:"col" binding:"required"`
}
