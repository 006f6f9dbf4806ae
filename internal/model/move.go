package model

import "github.com/benbeisheim/chessai-backend/internal/chess"

// MoveRequest is a move as a client submits it. Promotion may be left empty for a pawn reaching
// the last rank, in which case the game waits for a ChoosePromotion call.
type MoveRequest struct {
	From      chess.Position  `json:"from"`
	To        chess.Position  `json:"to"`
	Promotion chess.PieceType `json:"promotion,omitempty"`
}

func (r MoveRequest) move() chess.Move {
	return chess.Move{
		FromRow:   r.From.Row,
		FromCol:   r.From.Col,
		ToRow:     r.To.Row,
		ToCol:     r.To.Col,
		Promotion: r.Promotion,
	}
}

type CastleRookMove struct {
	From chess.Position `json:"from"`
	To   chess.Position `json:"to"`
}

// Ply is one half-move as recorded in the move history.
type Ply struct {
	Piece          chess.Piece     `json:"piece"`
	From           chess.Position  `json:"from"`
	To             chess.Position  `json:"to"`
	CapturedPiece  *chess.Piece    `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant,omitempty"`
	Promotion      chess.PieceType `json:"promotion,omitempty"`
	Check          bool            `json:"check"`
	Checkmate      bool            `json:"checkmate"`
	Notation       string          `json:"notation"`
}

// Move pairs white's ply with black's reply for display.
type Move struct {
	Number   int  `json:"number"`
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

// FullMoves groups a ply history into numbered moves. A history that starts with black to move
// gets an opening entry without a white ply.
func FullMoves(history []Ply) []Move {
	moves := make([]Move, 0, (len(history)+1)/2)
	for i := range history {
		ply := &history[i]
		if ply.Piece.Color == chess.White || len(moves) == 0 || moves[len(moves)-1].BlackPly != nil {
			moves = append(moves, Move{Number: len(moves) + 1})
		}
		last := &moves[len(moves)-1]
		if ply.Piece.Color == chess.White {
			last.WhitePly = ply
		} else {
			last.BlackPly = ply
		}
	}
	return moves
}

// SimpleMove marks the squares of the most recent ply.
type SimpleMove struct {
	From chess.Position `json:"from"`
	To   chess.Position `json:"to"`
}

// PendingPromotion is a human pawn move waiting for the choice of piece.
type PendingPromotion struct {
	From chess.Position `json:"from"`
	To   chess.Position `json:"to"`
}

func castleRookMove(m chess.Move) *CastleRookMove {
	switch m.Castle {
	case chess.KingSide:
		return &CastleRookMove{
			From: chess.Position{Row: m.FromRow, Col: 7},
			To:   chess.Position{Row: m.FromRow, Col: 5},
		}
	case chess.QueenSide:
		return &CastleRookMove{
			From: chess.Position{Row: m.FromRow, Col: 0},
			To:   chess.Position{Row: m.FromRow, Col: 3},
		}
	}
	return nil
}
