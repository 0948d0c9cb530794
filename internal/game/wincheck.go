package game

// evaluateTerminal decides the game state for the side now to move.
// A side without pieces loses before the no-moves rule is considered.
func evaluateTerminal(b Board, whiteCount, blackCount int, toMove Color) (Verdict, TerminalReason) {
	if blackCount == 0 {
		return VerdictWhiteWins, ReasonAllCaptured
	}
	if whiteCount == 0 {
		return VerdictBlackWins, ReasonAllCaptured
	}
	if !b.HasLegalMoves(toMove) {
		return winsFor(toMove.Opponent()), ReasonNoLegalMoves
	}
	return VerdictNone, ReasonNone
}
