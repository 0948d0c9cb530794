package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func boardWith(pieces map[Cell]Piece) Board {
	var b Board
	for c, p := range pieces {
		b.Set(c, p)
	}
	return b
}

func TestNewEngine_OpeningLayout(t *testing.T) {
	e := NewEngine()
	b := e.Board()

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			c := Cell{Row: row, Col: col}
			want := Empty
			if c.IsDark() && row < 3 {
				want = WhiteMan
			} else if c.IsDark() && row > 4 {
				want = BlackMan
			}
			require.Equal(t, want, b.At(c), "cell %s", c)
		}
	}
	require.Equal(t, 12, b.Count(White))
	require.Equal(t, 12, b.Count(Black))
	require.Equal(t, 12, e.WhiteCount())
	require.Equal(t, 12, e.BlackCount())
	require.Equal(t, White, e.CurrentPlayer())
	require.Equal(t, VerdictNone, e.Verdict())
	require.False(t, e.Selection().Active())
}

func TestOpening_SelectAndStep(t *testing.T) {
	e := NewEngine()

	dests, err := e.Select(Cell{2, 1})
	require.NoError(t, err)
	if diff := cmp.Diff([]Cell{{3, 0}, {3, 2}}, dests); diff != "" {
		t.Fatalf("destinations mismatch (-want +got):\n%s", diff)
	}
	require.True(t, e.Selection().Active())

	res, err := e.ApplyMove(Cell{2, 1}, Cell{3, 2})
	require.NoError(t, err)
	require.Equal(t, Black, res.NextPlayer)
	require.Equal(t, Black, e.CurrentPlayer())
	require.False(t, res.Captured)
	require.Nil(t, res.CapturedCell)
	require.False(t, res.Promoted)
	require.Equal(t, VerdictNone, res.Verdict)
	require.False(t, e.Selection().Active(), "selection is cleared by a move")
	require.Equal(t, WhiteMan, e.Board().At(Cell{3, 2}))
	require.Equal(t, Empty, e.Board().At(Cell{2, 1}))
	require.Equal(t, []Move{{From: Cell{2, 1}, To: Cell{3, 2}}}, e.History())
}

func TestApplyMove_Capture(t *testing.T) {
	e := NewEngineFromBoard(boardWith(map[Cell]Piece{
		{4, 3}: WhiteMan,
		{5, 4}: BlackMan,
	}), White)
	require.Equal(t, 1, e.BlackCount())

	res, err := e.ApplyMove(Cell{4, 3}, Cell{6, 5})
	require.NoError(t, err)
	require.True(t, res.Captured)
	require.Equal(t, &Cell{5, 4}, res.CapturedCell)
	require.Equal(t, BlackMan, res.CapturedPiece)
	require.Equal(t, 0, e.BlackCount())
	require.Equal(t, Black, e.CurrentPlayer())
	require.Equal(t, Empty, e.Board().At(Cell{5, 4}))
	require.Equal(t, VerdictWhiteWins, res.Verdict)
	require.Equal(t, ReasonAllCaptured, res.Reason)
}

func TestApplyMove_Promotion(t *testing.T) {
	e := NewEngineFromBoard(boardWith(map[Cell]Piece{
		{6, 1}: WhiteMan,
		{4, 5}: BlackMan,
	}), White)

	res, err := e.ApplyMove(Cell{6, 1}, Cell{7, 0})
	require.NoError(t, err)
	require.True(t, res.Promoted)
	require.Equal(t, WhiteKing, e.Board().At(Cell{7, 0}))
	require.Equal(t, VerdictNone, res.Verdict)

	// Black promotes on row 0 and a king never demotes.
	e = NewEngineFromBoard(boardWith(map[Cell]Piece{
		{1, 2}: BlackMan,
		{6, 5}: WhiteKing,
	}), Black)
	res, err = e.ApplyMove(Cell{1, 2}, Cell{0, 1})
	require.NoError(t, err)
	require.True(t, res.Promoted)
	require.Equal(t, BlackKing, e.Board().At(Cell{0, 1}))

	res, err = e.ApplyMove(Cell{6, 5}, Cell{7, 6})
	require.NoError(t, err)
	require.False(t, res.Promoted, "a king reaching the far row is not promoted again")
	require.Equal(t, WhiteKing, e.Board().At(Cell{7, 6}))
}

func TestApplyMove_IllegalLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		from    Cell
		to      Cell
		wantErr error
	}{
		{"two rows straight", Cell{2, 1}, Cell{4, 1}, ErrIllegalMove},
		{"occupied destination", Cell{1, 0}, Cell{2, 1}, ErrIllegalMove},
		{"light square", Cell{2, 1}, Cell{3, 1}, ErrIllegalMove},
		{"jump over empty", Cell{2, 1}, Cell{4, 3}, ErrIllegalMove},
		{"off the board", Cell{2, 7}, Cell{3, 8}, ErrIllegalMove},
		{"opponent piece", Cell{5, 0}, Cell{4, 1}, ErrInvalidSelection},
		{"empty source", Cell{3, 0}, Cell{4, 1}, ErrInvalidSelection},
		{"source off the board", Cell{-1, 0}, Cell{0, 1}, ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			_, err := e.Select(Cell{2, 3})
			require.NoError(t, err)
			before := e.Snapshot()

			_, err = e.ApplyMove(tt.from, tt.to)
			require.ErrorIs(t, err, tt.wantErr)

			var me *MoveError
			require.True(t, errors.As(err, &me))
			if diff := cmp.Diff(before, e.Snapshot()); diff != "" {
				t.Errorf("state changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestIsLegalMove_Direction(t *testing.T) {
	tests := []struct {
		name  string
		piece Piece
		from  Cell
		to    Cell
		want  bool
	}{
		{"white man forward", WhiteMan, Cell{3, 2}, Cell{4, 3}, true},
		{"white man backward", WhiteMan, Cell{3, 2}, Cell{2, 1}, false},
		{"black man forward", BlackMan, Cell{4, 3}, Cell{3, 2}, true},
		{"black man backward", BlackMan, Cell{4, 3}, Cell{5, 4}, false},
		{"white king backward", WhiteKing, Cell{3, 2}, Cell{2, 1}, true},
		{"black king backward", BlackKing, Cell{4, 3}, Cell{5, 4}, true},
		{"king two squares without capture", WhiteKing, Cell{3, 2}, Cell{5, 4}, false},
		{"king flying three squares", WhiteKing, Cell{0, 1}, Cell{3, 4}, false},
		{"sideways", WhiteKing, Cell{3, 2}, Cell{3, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(map[Cell]Piece{tt.from: tt.piece})
			require.Equal(t, tt.want, b.IsLegalMove(tt.from, tt.to))
		})
	}
}

func TestIsLegalMove_Capture(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[Cell]Piece
		from   Cell
		to     Cell
		want   bool
	}{
		{
			name:   "white man jumps black forward",
			pieces: map[Cell]Piece{{2, 1}: WhiteMan, {3, 2}: BlackMan},
			from:   Cell{2, 1}, to: Cell{4, 3}, want: true,
		},
		{
			name:   "white man jumps black king",
			pieces: map[Cell]Piece{{2, 1}: WhiteMan, {3, 2}: BlackKing},
			from:   Cell{2, 1}, to: Cell{4, 3}, want: true,
		},
		{
			name:   "own piece",
			pieces: map[Cell]Piece{{2, 1}: WhiteMan, {3, 2}: WhiteMan},
			from:   Cell{2, 1}, to: Cell{4, 3}, want: false,
		},
		{
			name:   "empty midpoint",
			pieces: map[Cell]Piece{{2, 1}: WhiteMan},
			from:   Cell{2, 1}, to: Cell{4, 3}, want: false,
		},
		{
			name:   "landing occupied",
			pieces: map[Cell]Piece{{2, 1}: WhiteMan, {3, 2}: BlackMan, {4, 3}: BlackMan},
			from:   Cell{2, 1}, to: Cell{4, 3}, want: false,
		},
		{
			name:   "man cannot capture backward",
			pieces: map[Cell]Piece{{4, 3}: WhiteMan, {3, 2}: BlackMan},
			from:   Cell{4, 3}, to: Cell{2, 1}, want: false,
		},
		{
			name:   "king captures backward",
			pieces: map[Cell]Piece{{4, 3}: WhiteKing, {3, 2}: BlackMan},
			from:   Cell{4, 3}, to: Cell{2, 1}, want: true,
		},
		{
			name:   "black man jumps white forward",
			pieces: map[Cell]Piece{{5, 4}: BlackMan, {4, 3}: WhiteMan},
			from:   Cell{5, 4}, to: Cell{3, 2}, want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(tt.pieces)
			require.Equal(t, tt.want, b.IsLegalMove(tt.from, tt.to))
		})
	}
}

func TestLegalDestinations_InvalidSelection(t *testing.T) {
	e := NewEngine()
	_, err := e.Select(Cell{2, 1})
	require.NoError(t, err)
	before := e.Selection()

	for _, c := range []Cell{{3, 0}, {5, 0}, {8, 1}, {0, -1}} {
		_, err := e.LegalDestinations(c)
		require.ErrorIs(t, err, ErrInvalidSelection, "cell %s", c)

		_, err = e.Select(c)
		require.ErrorIs(t, err, ErrInvalidSelection, "cell %s", c)
		require.Equal(t, before, e.Selection(), "selection kept after failed select of %s", c)
	}
}

func TestLegalDestinations_BlockedPieceIsEmpty(t *testing.T) {
	e := NewEngine()
	dests, err := e.LegalDestinations(Cell{0, 1})
	require.NoError(t, err)
	require.Empty(t, dests)
}

func TestTerminalCheck(t *testing.T) {
	tests := []struct {
		name       string
		pieces     map[Cell]Piece
		toMove     Color
		want       Verdict
		wantReason TerminalReason
	}{
		{
			name:   "no black pieces",
			pieces: map[Cell]Piece{{3, 2}: WhiteMan},
			toMove: Black, want: VerdictWhiteWins, wantReason: ReasonAllCaptured,
		},
		{
			name:   "no white pieces",
			pieces: map[Cell]Piece{{3, 2}: BlackMan},
			toMove: White, want: VerdictBlackWins, wantReason: ReasonAllCaptured,
		},
		{
			name:   "zero pieces checked before no moves",
			pieces: map[Cell]Piece{{7, 0}: WhiteMan},
			toMove: White, want: VerdictWhiteWins, wantReason: ReasonAllCaptured,
		},
		{
			name: "side to move is blocked",
			pieces: map[Cell]Piece{
				{1, 0}: WhiteMan,
				{2, 1}: BlackMan,
				{3, 2}: BlackMan,
			},
			toMove: White, want: VerdictBlackWins, wantReason: ReasonNoLegalMoves,
		},
		{
			name: "blocked side not to move is ignored",
			pieces: map[Cell]Piece{
				{1, 0}: WhiteMan,
				{2, 1}: BlackMan,
				{3, 2}: BlackMan,
			},
			toMove: Black, want: VerdictNone, wantReason: ReasonNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngineFromBoard(boardWith(tt.pieces), tt.toMove)
			require.Equal(t, tt.want, e.TerminalCheck())
			require.Equal(t, tt.want, e.Verdict())
			require.Equal(t, tt.wantReason, e.Reason())
		})
	}
}

func TestGameOver_RejectsUntilReset(t *testing.T) {
	e := NewEngineFromBoard(boardWith(map[Cell]Piece{
		{4, 3}: WhiteMan,
		{5, 4}: BlackMan,
	}), White)
	_, err := e.ApplyMove(Cell{4, 3}, Cell{6, 5})
	require.NoError(t, err)
	require.True(t, e.Over())

	_, err = e.Select(Cell{6, 5})
	require.ErrorIs(t, err, ErrGameOver)
	_, err = e.ApplyMove(Cell{6, 5}, Cell{7, 4})
	require.ErrorIs(t, err, ErrGameOver)

	e.Reset()
	require.False(t, e.Over())
	require.Equal(t, White, e.CurrentPlayer())
	require.Equal(t, NewBoard(), e.Board())
	require.Equal(t, 12, e.WhiteCount())
	require.Equal(t, 12, e.BlackCount())
	require.Empty(t, e.History())
}

func TestClick_Flow(t *testing.T) {
	e := NewEngine()

	out, res, err := e.Click(Cell{2, 1})
	require.NoError(t, err)
	require.Equal(t, ClickSelected, out)
	require.Nil(t, res)

	out, _, err = e.Click(Cell{2, 1})
	require.NoError(t, err)
	require.Equal(t, ClickDeselected, out)
	require.False(t, e.Selection().Active())

	_, _, err = e.Click(Cell{2, 1})
	require.NoError(t, err)

	// Clicking another own piece switches the selection.
	out, _, err = e.Click(Cell{2, 3})
	require.NoError(t, err)
	require.Equal(t, ClickSelected, out)
	require.Equal(t, &Cell{2, 3}, e.Selection().Cell)

	// A bad re-selection keeps the old one.
	_, _, err = e.Click(Cell{5, 0})
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.Equal(t, &Cell{2, 3}, e.Selection().Cell)

	out, res, err = e.Click(Cell{3, 4})
	require.NoError(t, err)
	require.Equal(t, ClickMoved, out)
	require.NotNil(t, res)
	require.Equal(t, Move{From: Cell{2, 3}, To: Cell{3, 4}}, res.Move)
	require.Equal(t, Black, e.CurrentPlayer())
}

func TestRandomPlay_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 20; game++ {
		e := NewEngine()
		capturedWhite, capturedBlack := 0, 0

		for ply := 0; ply < 300 && !e.Over(); ply++ {
			moves := e.Board().LegalMoves(e.CurrentPlayer())
			require.NotEmpty(t, moves, "a side with no moves must already have lost")

			mv := moves[rng.Intn(len(moves))]
			wasKing := e.Board().At(mv.From).IsKing()
			res, err := e.ApplyMove(mv.From, mv.To)
			require.NoError(t, err)

			if res.Captured {
				if res.CapturedPiece.Color() == White {
					capturedWhite++
				} else {
					capturedBlack++
				}
			}
			got := e.Board().At(mv.To)
			if wasKing {
				require.True(t, got.IsKing(), "king demoted at %s", mv.To)
			}
			if !wasKing && mv.To.Row == res.Piece.Color().promotionRow() {
				require.True(t, got.IsKing(), "man not promoted at %s", mv.To)
			}

			b := e.Board()
			require.Equal(t, b.Count(White), e.WhiteCount())
			require.Equal(t, b.Count(Black), e.BlackCount())
			require.Equal(t, StartPieces, e.WhiteCount()+capturedWhite)
			require.Equal(t, StartPieces, e.BlackCount()+capturedBlack)
			require.GreaterOrEqual(t, e.WhiteCount(), 0)
			require.GreaterOrEqual(t, e.BlackCount(), 0)
		}
	}
}

func TestSnapshot_Status(t *testing.T) {
	e := NewEngine()
	s := e.Snapshot()
	require.Equal(t, "Current Player: White | White: 12 | Black: 12", s.Status())
	require.Empty(t, s.GameOverMessage())

	e = NewEngineFromBoard(boardWith(map[Cell]Piece{{3, 2}: WhiteMan}), Black)
	require.Equal(t, "White wins! All black pieces captured!", e.Snapshot().GameOverMessage())

	e = NewEngineFromBoard(boardWith(map[Cell]Piece{
		{1, 0}: WhiteMan,
		{2, 1}: BlackMan,
		{3, 2}: BlackMan,
	}), White)
	require.Equal(t, "Black wins! White has no valid moves!", e.Snapshot().GameOverMessage())
}
