package chess

// FormatMove renders a played move for move lists: "Ng1-f3", "e4xd5", "O-O", "e7-e8=Q+".
// after is the status of the position the move produced.
func FormatMove(moved PieceType, m Move, capture bool, after Phase) string {
	var s string
	switch m.Castle {
	case KingSide:
		s = "O-O"
	case QueenSide:
		s = "O-O-O"
	default:
		sep := "-"
		if capture {
			sep = "x"
		}
		s = moved.Letter() + ToNotation(m.FromRow, m.FromCol) + sep + ToNotation(m.ToRow, m.ToCol)
		if m.Promotion != NoPiece {
			s += "=" + m.Promotion.Letter()
		}
	}

	switch after {
	case Checkmate:
		s += "#"
	case Check:
		s += "+"
	}
	return s
}
