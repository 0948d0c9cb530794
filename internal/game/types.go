package game

import (
	"fmt"
	"strings"
)

const (
	BoardSize   = 8
	StartPieces = 12
)

type Color int

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "white":
		*c = White
	case "black":
		*c = Black
	case "none", "":
		*c = NoColor
	default:
		return fmt.Errorf("unknown color %q", b)
	}
	return nil
}

// forward is the row step a man of this color is allowed to take.
func (c Color) forward() int {
	if c == Black {
		return -1
	}
	return 1
}

// promotionRow is the farthest row from the color's own starting edge.
func (c Color) promotionRow() int {
	if c == Black {
		return 0
	}
	return BoardSize - 1
}

type Piece int

const (
	Empty Piece = iota
	WhiteMan
	WhiteKing
	BlackMan
	BlackKing
)

var pieceNames = [...]string{
	Empty:     "empty",
	WhiteMan:  "white_man",
	WhiteKing: "white_king",
	BlackMan:  "black_man",
	BlackKing: "black_king",
}

func (p Piece) String() string {
	if p < Empty || p > BlackKing {
		return "unknown"
	}
	return pieceNames[p]
}

func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Piece) UnmarshalText(b []byte) error {
	for i, name := range pieceNames {
		if name == string(b) {
			*p = Piece(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece %q", b)
}

func (p Piece) Color() Color {
	switch p {
	case WhiteMan, WhiteKing:
		return White
	case BlackMan, BlackKing:
		return Black
	default:
		return NoColor
	}
}

func (p Piece) IsKing() bool {
	return p == WhiteKing || p == BlackKing
}

// Promote returns the king of the same color. Kings and Empty are returned unchanged.
func (p Piece) Promote() Piece {
	switch p {
	case WhiteMan:
		return WhiteKing
	case BlackMan:
		return BlackKing
	default:
		return p
	}
}

// Symbol is the one-character form used by Board.String.
func (p Piece) Symbol() byte {
	switch p {
	case WhiteMan:
		return 'w'
	case WhiteKing:
		return 'W'
	case BlackMan:
		return 'b'
	case BlackKing:
		return 'B'
	default:
		return '.'
	}
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// IsDark reports whether the cell is playable.
func (c Cell) IsDark() bool {
	return (c.Row+c.Col)%2 == 1
}

// Board is indexed [row][col]. Row 0 is White's edge.
type Board [BoardSize][BoardSize]Piece

// NewBoard returns the standard opening layout.
func NewBoard() Board {
	var b Board
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if (row+col)%2 == 0 {
				continue
			}
			switch {
			case row < 3:
				b[row][col] = WhiteMan
			case row >= BoardSize-3:
				b[row][col] = BlackMan
			}
		}
	}
	return b
}

// At returns Empty for out-of-bounds cells.
func (b Board) At(c Cell) Piece {
	if !c.InBounds() {
		return Empty
	}
	return b[c.Row][c.Col]
}

func (b *Board) Set(c Cell, p Piece) {
	if c.InBounds() {
		b[c.Row][c.Col] = p
	}
}

// Count returns how many pieces of the given color are on the board.
func (b Board) Count(color Color) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col].Color() == color {
				n++
			}
		}
	}
	return n
}

// String renders the board with row 7 on top, the way the console client prints it.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5 6 7\n")
	for row := BoardSize - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d", row)
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(b[row][col].Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

type Move struct {
	From Cell `json:"from"`
	To   Cell `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + "->" + m.To.String()
}

// IsCapture reports whether the move spans two rows.
func (m Move) IsCapture() bool {
	return abs(m.To.Row-m.From.Row) == 2
}

// Midpoint is only meaningful for captures.
func (m Move) Midpoint() Cell {
	return Cell{Row: (m.From.Row + m.To.Row) / 2, Col: (m.From.Col + m.To.Col) / 2}
}

type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictWhiteWins
	VerdictBlackWins
)

func (v Verdict) String() string {
	switch v {
	case VerdictWhiteWins:
		return "white_wins"
	case VerdictBlackWins:
		return "black_wins"
	default:
		return "none"
	}
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Verdict) UnmarshalText(b []byte) error {
	for _, cand := range []Verdict{VerdictNone, VerdictWhiteWins, VerdictBlackWins} {
		if cand.String() == string(b) {
			*v = cand
			return nil
		}
	}
	return fmt.Errorf("unknown verdict %q", b)
}

// Winner returns NoColor while the game is in progress.
func (v Verdict) Winner() Color {
	switch v {
	case VerdictWhiteWins:
		return White
	case VerdictBlackWins:
		return Black
	default:
		return NoColor
	}
}

func winsFor(c Color) Verdict {
	if c == White {
		return VerdictWhiteWins
	}
	return VerdictBlackWins
}

type TerminalReason int

const (
	ReasonNone TerminalReason = iota
	ReasonAllCaptured
	ReasonNoLegalMoves
)

func (r TerminalReason) String() string {
	switch r {
	case ReasonAllCaptured:
		return "all_captured"
	case ReasonNoLegalMoves:
		return "no_legal_moves"
	default:
		return "none"
	}
}

func (r TerminalReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *TerminalReason) UnmarshalText(b []byte) error {
	for _, cand := range []TerminalReason{ReasonNone, ReasonAllCaptured, ReasonNoLegalMoves} {
		if cand.String() == string(b) {
			*r = cand
			return nil
		}
	}
	return fmt.Errorf("unknown terminal reason %q", b)
}

type MoveResult struct {
	Move          Move           `json:"move"`
	Piece         Piece          `json:"piece"`
	Captured      bool           `json:"captured"`
	CapturedCell  *Cell          `json:"capturedCell,omitempty"`
	CapturedPiece Piece          `json:"capturedPiece"`
	Promoted      bool           `json:"promoted"`
	NextPlayer    Color          `json:"nextPlayer"`
	Verdict       Verdict        `json:"verdict"`
	Reason        TerminalReason `json:"reason"`
}

// Selection is the presentation-facing choice of a source cell.
type Selection struct {
	Cell         *Cell  `json:"cell,omitempty"`
	Destinations []Cell `json:"destinations"`
}

func (s Selection) Active() bool {
	return s.Cell != nil
}

func (s Selection) Allows(to Cell) bool {
	for _, d := range s.Destinations {
		if d == to {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
