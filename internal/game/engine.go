package game

import "fmt"

// Engine owns one game: the board, the side to move, piece counts and the
// current selection. It is not safe for concurrent use; callers serialize
// access (see package table).
type Engine struct {
	board      Board
	toMove     Color
	whiteCount int
	blackCount int

	selected     *Cell
	destinations []Cell

	verdict Verdict
	reason  TerminalReason
	history []Move
}

// NewEngine returns an engine set up with the standard opening, White to move.
func NewEngine() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// NewEngineFromBoard starts a game from an arbitrary position. Counts are
// taken from the board and the position is checked for a verdict right away.
func NewEngineFromBoard(b Board, toMove Color) *Engine {
	if toMove != Black {
		toMove = White
	}
	e := &Engine{
		board:      b,
		toMove:     toMove,
		whiteCount: b.Count(White),
		blackCount: b.Count(Black),
	}
	e.verdict, e.reason = evaluateTerminal(e.board, e.whiteCount, e.blackCount, e.toMove)
	return e
}

// Reset restores the opening position: 12 men each, White to move.
func (e *Engine) Reset() {
	e.board = NewBoard()
	e.toMove = White
	e.whiteCount = StartPieces
	e.blackCount = StartPieces
	e.verdict = VerdictNone
	e.reason = ReasonNone
	e.history = nil
	e.ClearSelection()
}

func (e *Engine) Board() Board {
	return e.board
}

func (e *Engine) CurrentPlayer() Color {
	return e.toMove
}

func (e *Engine) WhiteCount() int {
	return e.whiteCount
}

func (e *Engine) BlackCount() int {
	return e.blackCount
}

// Verdict is the outcome recorded by the last move.
func (e *Engine) Verdict() Verdict {
	return e.verdict
}

func (e *Engine) Reason() TerminalReason {
	return e.reason
}

func (e *Engine) Over() bool {
	return e.verdict != VerdictNone
}

// History returns a copy of the moves applied since the last reset.
func (e *Engine) History() []Move {
	return append([]Move(nil), e.history...)
}

// Count returns the tracked piece count for a side.
func (e *Engine) Count(c Color) int {
	switch c {
	case White:
		return e.whiteCount
	case Black:
		return e.blackCount
	default:
		return 0
	}
}

func (e *Engine) checkOwned(c Cell) error {
	if !c.InBounds() {
		return selectionError(c, "cell is off the board")
	}
	piece := e.board.At(c)
	if piece == Empty {
		return selectionError(c, "no piece at this square")
	}
	if piece.Color() != e.toMove {
		return selectionError(c, "it's "+e.toMove.String()+"'s turn")
	}
	return nil
}

// LegalDestinations returns every cell the piece at c can reach in one move.
// The piece must belong to the side to move.
func (e *Engine) LegalDestinations(c Cell) ([]Cell, error) {
	if err := e.checkOwned(c); err != nil {
		return nil, err
	}
	return e.board.LegalDestinations(c), nil
}

// IsLegalMove is the board predicate; it ignores whose turn it is.
func (e *Engine) IsLegalMove(from, to Cell) bool {
	return e.board.IsLegalMove(from, to)
}

// Select makes c the current selection. On error the previous selection is kept.
func (e *Engine) Select(c Cell) ([]Cell, error) {
	if e.Over() {
		return nil, &MoveError{Op: "select", From: c, Err: ErrGameOver}
	}
	dests, err := e.LegalDestinations(c)
	if err != nil {
		return nil, err
	}
	sel := c
	e.selected = &sel
	e.destinations = dests
	return append([]Cell(nil), dests...), nil
}

func (e *Engine) ClearSelection() {
	e.selected = nil
	e.destinations = nil
}

func (e *Engine) Selection() Selection {
	s := Selection{Destinations: append([]Cell{}, e.destinations...)}
	if e.selected != nil {
		c := *e.selected
		s.Cell = &c
	}
	return s
}

// ApplyMove performs a single step or capture for the side to move.
// Nothing changes when an error is returned.
func (e *Engine) ApplyMove(from, to Cell) (MoveResult, error) {
	if e.Over() {
		return MoveResult{}, moveError(from, to, "", ErrGameOver)
	}
	if err := e.checkOwned(from); err != nil {
		return MoveResult{}, err
	}
	if !e.board.IsLegalMove(from, to) {
		return MoveResult{}, moveError(from, to, "destination not reachable", ErrIllegalMove)
	}

	mv := Move{From: from, To: to}
	piece := e.board.At(from)
	res := MoveResult{Move: mv, Piece: piece}

	e.board.Set(to, piece)
	e.board.Set(from, Empty)

	if mv.IsCapture() {
		mid := mv.Midpoint()
		captured := e.board.At(mid)
		e.board.Set(mid, Empty)
		if captured.Color() == White {
			e.whiteCount--
		} else {
			e.blackCount--
		}
		res.Captured = true
		res.CapturedCell = &mid
		res.CapturedPiece = captured
	}

	if !piece.IsKing() && to.Row == piece.Color().promotionRow() {
		e.board.Set(to, piece.Promote())
		res.Promoted = true
	}

	e.ClearSelection()
	e.history = append(e.history, mv)
	e.toMove = e.toMove.Opponent()
	e.verdict, e.reason = evaluateTerminal(e.board, e.whiteCount, e.blackCount, e.toMove)

	res.NextPlayer = e.toMove
	res.Verdict = e.verdict
	res.Reason = e.reason
	return res, nil
}

// TerminalCheck evaluates the current position for the side to move.
func (e *Engine) TerminalCheck() Verdict {
	v, _ := evaluateTerminal(e.board, e.whiteCount, e.blackCount, e.toMove)
	return v
}

type ClickOutcome int

const (
	ClickSelected ClickOutcome = iota
	ClickDeselected
	ClickMoved
)

func (o ClickOutcome) String() string {
	switch o {
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickMoved:
		return "moved"
	default:
		return "unknown"
	}
}

func (o ClickOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *ClickOutcome) UnmarshalText(b []byte) error {
	for _, cand := range []ClickOutcome{ClickSelected, ClickDeselected, ClickMoved} {
		if cand.String() == string(b) {
			*o = cand
			return nil
		}
	}
	return fmt.Errorf("unknown click outcome %q", b)
}

// Click routes a single cell pick from the presentation layer: it deselects
// the selected cell, moves to a highlighted destination, or (re)selects.
func (e *Engine) Click(c Cell) (ClickOutcome, *MoveResult, error) {
	if e.selected != nil {
		if *e.selected == c {
			e.ClearSelection()
			return ClickDeselected, nil, nil
		}
		if (Selection{Destinations: e.destinations}).Allows(c) {
			res, err := e.ApplyMove(*e.selected, c)
			if err != nil {
				return ClickMoved, nil, err
			}
			return ClickMoved, &res, nil
		}
	}
	if _, err := e.Select(c); err != nil {
		return ClickSelected, nil, err
	}
	return ClickSelected, nil, nil
}
