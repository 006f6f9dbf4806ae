package chess

// Apply plays a generator-produced move and returns the new position, the new state and the
// captured piece, if any. The inputs are not modified. A pawn reaching its last rank without a
// promotion kind becomes a queen.
func Apply(b Board, st State, m Move) (Board, State, *Piece) {
	moved := b[m.FromRow][m.FromCol]
	var captured *Piece

	switch {
	case m.Castle != NoCastle:
		b[m.ToRow][m.ToCol] = moved
		b[m.FromRow][m.FromCol] = Piece{}
		rookFrom, rookTo := 7, 5
		if m.Castle == QueenSide {
			rookFrom, rookTo = 0, 3
		}
		b[m.ToRow][rookTo] = b[m.ToRow][rookFrom]
		b[m.ToRow][rookFrom] = Piece{}

	case m.EnPassant:
		victim := b[m.FromRow][m.ToCol]
		captured = &victim
		b[m.ToRow][m.ToCol] = moved
		b[m.FromRow][m.FromCol] = Piece{}
		b[m.FromRow][m.ToCol] = Piece{}

	default:
		if target := b[m.ToRow][m.ToCol]; !target.IsEmpty() {
			captured = &target
		}
		b[m.ToRow][m.ToCol] = moved
		b[m.FromRow][m.FromCol] = Piece{}
	}

	if moved.Type == Pawn && m.ToRow == moved.Color.LastRank() {
		kind := m.Promotion
		if !kind.IsPromotion() {
			kind = Queen
		}
		b[m.ToRow][m.ToCol] = Piece{Type: kind, Color: moved.Color}
	}

	return b, nextState(st, moved, m, captured), captured
}

// nextState derives castling rights and the en-passant target from the piece as it was before the
// move.
func nextState(st State, moved Piece, m Move, captured *Piece) State {
	next := State{WhiteCastle: st.WhiteCastle, BlackCastle: st.BlackCastle}

	own := next.castling(moved.Color)
	switch moved.Type {
	case King:
		own.KingSide = false
		own.QueenSide = false
	case Rook:
		if m.FromRow == moved.Color.BackRank() {
			revokeRookSide(own, m.FromCol)
		}
	}

	if captured != nil && captured.Type == Rook && m.ToRow == captured.Color.BackRank() {
		revokeRookSide(next.castling(captured.Color), m.ToCol)
	}

	if moved.Type == Pawn && abs(m.ToRow-m.FromRow) == 2 {
		next.EnPassantTarget = &Position{Row: (m.FromRow + m.ToRow) / 2, Col: m.ToCol}
	}
	return next
}

func revokeRookSide(rights *CastlingRights, col int) {
	switch col {
	case 0:
		rights.QueenSide = false
	case 7:
		rights.KingSide = false
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
