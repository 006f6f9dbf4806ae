package chess

// CastlingRights are revoked independently and never restored.
type CastlingRights struct {
	KingSide  bool `json:"kingSide"`
	QueenSide bool `json:"queenSide"`
}

// State is the auxiliary game state that the board alone does not capture.
type State struct {
	WhiteCastle     CastlingRights `json:"whiteCastle"`
	BlackCastle     CastlingRights `json:"blackCastle"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
}

// NewState returns full castling rights and no en-passant target.
func NewState() State {
	return State{
		WhiteCastle: CastlingRights{KingSide: true, QueenSide: true},
		BlackCastle: CastlingRights{KingSide: true, QueenSide: true},
	}
}

// Castling returns the rights held by side.
func (s State) Castling(side Color) CastlingRights {
	if side == White {
		return s.WhiteCastle
	}
	return s.BlackCastle
}

func (s *State) castling(side Color) *CastlingRights {
	if side == White {
		return &s.WhiteCastle
	}
	return &s.BlackCastle
}

// Clone returns a copy that shares nothing with s.
func (s State) Clone() State {
	if s.EnPassantTarget != nil {
		t := *s.EnPassantTarget
		s.EnPassantTarget = &t
	}
	return s
}

// IsEnPassantTarget reports whether the square is the current en-passant target.
func (s State) IsEnPassantTarget(row, col int) bool {
	return s.EnPassantTarget != nil && s.EnPassantTarget.Row == row && s.EnPassantTarget.Col == col
}

// Phase is the derived status of a position.
type Phase string

const (
	Playing   Phase = "playing"
	Check     Phase = "check"
	Checkmate Phase = "checkmate"
	Stalemate Phase = "stalemate"
)

// GameStatus is always derived from (board, state, side to move) and never stored on its own.
type GameStatus struct {
	Status Phase  `json:"status"`
	Winner *Color `json:"winner"`
}

// IsOver reports whether no further moves can be played.
func (g GameStatus) IsOver() bool {
	return g.Status == Checkmate || g.Status == Stalemate
}

// Status derives the phase of the position for the side to move. It recomputes the legal move set
// every time because any move can change check status anywhere on the board.
func Status(b *Board, toMove Color, st State) GameStatus {
	hasMoves := len(AllMoves(b, toMove, st)) > 0
	inCheck := b.IsKingInCheck(toMove)

	switch {
	case !hasMoves && inCheck:
		winner := toMove.Opponent()
		return GameStatus{Status: Checkmate, Winner: &winner}
	case !hasMoves:
		return GameStatus{Status: Stalemate}
	case inCheck:
		return GameStatus{Status: Check}
	}
	return GameStatus{Status: Playing}
}
