package chess

// CastleSide tags a castling move.
type CastleSide string

const (
	NoCastle  CastleSide = ""
	KingSide  CastleSide = "kingside"
	QueenSide CastleSide = "queenside"
)

// Move describes intent only. Applying it is done by Apply.
type Move struct {
	FromRow    int        `json:"fromRow"`
	FromCol    int        `json:"fromCol"`
	ToRow      int        `json:"toRow"`
	ToCol      int        `json:"toCol"`
	EnPassant  bool       `json:"enPassant,omitempty"`
	DoublePawn bool       `json:"doublePawn,omitempty"`
	Castle     CastleSide `json:"castle,omitempty"`
	Promotion  PieceType  `json:"promotion,omitempty"`
}

func (m Move) From() Position { return Position{Row: m.FromRow, Col: m.FromCol} }

func (m Move) To() Position { return Position{Row: m.ToRow, Col: m.ToCol} }

// SameSquares reports whether two moves share origin and destination.
func (m Move) SameSquares(o Move) bool {
	return m.FromRow == o.FromRow && m.FromCol == o.FromCol && m.ToRow == o.ToRow && m.ToCol == o.ToCol
}

// String returns the coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := ToNotation(m.FromRow, m.FromCol) + ToNotation(m.ToRow, m.ToCol)
	if m.Promotion != NoPiece {
		s += string(m.Promotion.Letter()[0] + 'a' - 'A')
	}
	return s
}

// PseudoMoves returns the moves of the piece on (row, col) that follow its movement pattern and
// occupancy rules. They may leave the mover's own king in check.
func PseudoMoves(b *Board, row, col int, st State) []Move {
	p := b[row][col]
	switch p.Type {
	case Pawn:
		return pawnMoves(b, row, col, p.Color, st)
	case Knight:
		return stepMoves(b, row, col, p.Color, knightDirs)
	case Bishop:
		return slidingMoves(b, row, col, p.Color, bishopDirs)
	case Rook:
		return slidingMoves(b, row, col, p.Color, rookDirs)
	case Queen:
		return slidingMoves(b, row, col, p.Color, queenDirs)
	case King:
		return append(stepMoves(b, row, col, p.Color, kingDirs), castleMoves(b, row, col, p.Color, st)...)
	}
	return nil
}

func pawnMoves(b *Board, row, col int, color Color, st State) []Move {
	var moves []Move
	dir := color.Forward()
	one := row + dir

	if !inBounds(one, col) {
		return nil
	}
	if b[one][col].IsEmpty() {
		moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: one, ToCol: col})
		two := row + 2*dir
		if row == color.PawnRank() && b[two][col].IsEmpty() {
			moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: two, ToCol: col, DoublePawn: true})
		}
	}

	for _, dc := range [2]int{-1, 1} {
		c := col + dc
		if !inBounds(one, c) {
			continue
		}
		target := b[one][c]
		if !target.IsEmpty() && target.Color != color {
			moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: one, ToCol: c})
		}
		// The pawn being captured en passant stands beside the mover.
		if st.IsEnPassantTarget(one, c) && target.IsEmpty() {
			if victim := b[row][c]; victim.Type == Pawn && victim.Color != color {
				moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: one, ToCol: c, EnPassant: true})
			}
		}
	}
	return moves
}

func stepMoves(b *Board, row, col int, color Color, dirs []Position) []Move {
	var moves []Move
	for _, d := range dirs {
		r, c := row+d.Row, col+d.Col
		if !inBounds(r, c) {
			continue
		}
		if target := b[r][c]; target.IsEmpty() || target.Color != color {
			moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: r, ToCol: c})
		}
	}
	return moves
}

func slidingMoves(b *Board, row, col int, color Color, dirs []Position) []Move {
	var moves []Move
	for _, d := range dirs {
		r, c := row+d.Row, col+d.Col
		for inBounds(r, c) {
			target := b[r][c]
			if target.IsEmpty() {
				moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: r, ToCol: c})
			} else {
				if target.Color != color {
					moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: r, ToCol: c})
				}
				break
			}
			r += d.Row
			c += d.Col
		}
	}
	return moves
}

func castleMoves(b *Board, row, col int, color Color, st State) []Move {
	rights := st.Castling(color)
	if !rights.KingSide && !rights.QueenSide {
		return nil
	}
	if row != color.BackRank() || col != 4 || b.IsSquareAttacked(row, col, color) {
		return nil
	}
	rook := Piece{Type: Rook, Color: color}

	var moves []Move
	if rights.KingSide && b[row][7] == rook &&
		b[row][5].IsEmpty() && b[row][6].IsEmpty() &&
		!b.IsSquareAttacked(row, 5, color) && !b.IsSquareAttacked(row, 6, color) {
		moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: row, ToCol: 6, Castle: KingSide})
	}
	if rights.QueenSide && b[row][0] == rook &&
		b[row][1].IsEmpty() && b[row][2].IsEmpty() && b[row][3].IsEmpty() &&
		!b.IsSquareAttacked(row, 3, color) && !b.IsSquareAttacked(row, 2, color) {
		moves = append(moves, Move{FromRow: row, FromCol: col, ToRow: row, ToCol: 2, Castle: QueenSide})
	}
	return moves
}

// LegalMoves filters PseudoMoves down to the moves that do not leave the mover's king attacked.
// The simulation only relocates the piece and removes an en-passant victim, which is all that
// king safety depends on.
func LegalMoves(b *Board, row, col int, st State) []Move {
	p := b[row][col]
	if p.IsEmpty() {
		return nil
	}
	pseudo := PseudoMoves(b, row, col, st)
	legal := pseudo[:0]
	for _, m := range pseudo {
		test := b.Clone()
		test[m.ToRow][m.ToCol] = p
		test[row][col] = Piece{}
		if m.EnPassant {
			test[row][m.ToCol] = Piece{}
		}
		if !test.IsKingInCheck(p.Color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// AllMoves collects the legal moves of every piece of side in row-major square order. The order is
// stable so that search results are reproducible.
func AllMoves(b *Board, side Color, st State) []Move {
	var moves []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; !p.IsEmpty() && p.Color == side {
				moves = append(moves, LegalMoves(b, row, col, st)...)
			}
		}
	}
	return moves
}

// FindLegalMove returns the generator's version of a requested move, carrying the tags the
// generator attached. The requested promotion kind is copied over.
func FindLegalMove(b *Board, st State, want Move) (Move, bool) {
	if !inBounds(want.FromRow, want.FromCol) || !inBounds(want.ToRow, want.ToCol) {
		return Move{}, false
	}
	for _, m := range LegalMoves(b, want.FromRow, want.FromCol, st) {
		if m.SameSquares(want) {
			m.Promotion = want.Promotion
			return m, true
		}
	}
	return Move{}, false
}

// NeedsPromotion reports whether m moves a pawn onto its last rank.
func NeedsPromotion(b *Board, m Move) bool {
	p := b[m.FromRow][m.FromCol]
	return p.Type == Pawn && m.ToRow == p.Color.LastRank()
}

// Promotions expands a promoting move into one move per promotion kind.
func Promotions(m Move) []Move {
	out := make([]Move, 0, len(PromotionTypes))
	for _, t := range PromotionTypes {
		m.Promotion = t
		out = append(out, m)
	}
	return out
}
