package game

// Offsets a piece can reach in one move, ordered so that the destinations
// come out row-major (the order a full-board scan would produce).
var moveOffsets = [][2]int{
	{-2, -2}, {-2, 2},
	{-1, -1}, {-1, 1},
	{1, -1}, {1, 1},
	{2, -2}, {2, 2},
}

// IsLegalMove reports whether the piece at from may move to to in a single
// step or single capture jump. It does not look at whose turn it is.
func (b Board) IsLegalMove(from, to Cell) bool {
	if !from.InBounds() || !to.InBounds() {
		return false
	}
	piece := b.At(from)
	if piece == Empty {
		return false
	}
	if !to.IsDark() || b.At(to) != Empty {
		return false
	}

	dr := to.Row - from.Row
	dc := to.Col - from.Col
	dist := abs(dr)
	if dist != abs(dc) || (dist != 1 && dist != 2) {
		return false
	}

	// Men only go forward, kings go either way.
	if !piece.IsKing() && dr/dist != piece.Color().forward() {
		return false
	}

	if dist == 2 {
		jumped := b.At(Move{From: from, To: to}.Midpoint())
		if jumped.Color() != piece.Color().Opponent() {
			return false
		}
	}
	return true
}

// LegalDestinations lists every cell the piece at from can reach with one move.
func (b Board) LegalDestinations(from Cell) []Cell {
	out := []Cell{}
	for _, off := range moveOffsets {
		to := Cell{Row: from.Row + off[0], Col: from.Col + off[1]}
		if b.IsLegalMove(from, to) {
			out = append(out, to)
		}
	}
	return out
}

// LegalMoves generates all legal moves for a side.
func (b Board) LegalMoves(color Color) []Move {
	var moves []Move
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			from := Cell{Row: row, Col: col}
			if b.At(from).Color() != color {
				continue
			}
			for _, to := range b.LegalDestinations(from) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// HasLegalMoves stops at the first piece of color that can move.
func (b Board) HasLegalMoves(color Color) bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			from := Cell{Row: row, Col: col}
			if b.At(from).Color() != color {
				continue
			}
			for _, off := range moveOffsets {
				if b.IsLegalMove(from, Cell{Row: row + off[0], Col: col + off[1]}) {
					return true
				}
			}
		}
	}
	return false
}
