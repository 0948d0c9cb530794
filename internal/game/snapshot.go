package game

import "fmt"

// Snapshot is everything a renderer needs after a mutation.
type Snapshot struct {
	Board         Board          `json:"board"`
	CurrentPlayer Color          `json:"currentPlayer"`
	WhiteCount    int            `json:"whiteCount"`
	BlackCount    int            `json:"blackCount"`
	Selection     Selection      `json:"selection"`
	Verdict       Verdict        `json:"verdict"`
	Reason        TerminalReason `json:"reason"`
	Moves         int            `json:"moves"`
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:         e.board,
		CurrentPlayer: e.toMove,
		WhiteCount:    e.whiteCount,
		BlackCount:    e.blackCount,
		Selection:     e.Selection(),
		Verdict:       e.verdict,
		Reason:        e.reason,
		Moves:         len(e.history),
	}
}

func (s Snapshot) Status() string {
	return fmt.Sprintf("Current Player: %s | White: %d | Black: %d",
		titleColor(s.CurrentPlayer), s.WhiteCount, s.BlackCount)
}

// GameOverMessage is empty while the game is in progress.
func (s Snapshot) GameOverMessage() string {
	winner := s.Verdict.Winner()
	if winner == NoColor {
		return ""
	}
	loser := winner.Opponent()
	switch s.Reason {
	case ReasonAllCaptured:
		return fmt.Sprintf("%s wins! All %s pieces captured!", titleColor(winner), loser)
	case ReasonNoLegalMoves:
		return fmt.Sprintf("%s wins! %s has no valid moves!", titleColor(winner), titleColor(loser))
	default:
		return titleColor(winner) + " wins!"
	}
}

func titleColor(c Color) string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}
