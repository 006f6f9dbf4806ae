package model

import "github.com/benbeisheim/chessai-backend/internal/chess"

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]chess.Piece, 0),
		Black: make([]chess.Piece, 0),
	}
}

func (c *CapturedPieces) add(by chess.Color, p chess.Piece) {
	if by == chess.White {
		c.White = append(c.White, p)
	} else {
		c.Black = append(c.Black, p)
	}
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]chess.Piece, 0, len(c.White)), c.White...),
		Black: append(make([]chess.Piece, 0, len(c.Black)), c.Black...),
	}
}

// Sound tells the client which effect to play for the last ply.
type Sound string

const (
	SoundNone     Sound = ""
	SoundMove     Sound = "move"
	SoundCapture  Sound = "capture"
	SoundCastle   Sound = "castle"
	SoundPromote  Sound = "promote"
	SoundCheck    Sound = "check"
	SoundGameOver Sound = "gameOver"
)

func soundFor(ply Ply, status chess.GameStatus) Sound {
	switch {
	case status.IsOver():
		return SoundGameOver
	case ply.Check:
		return SoundCheck
	case ply.Promotion != chess.NoPiece:
		return SoundPromote
	case ply.CastleRookMove != nil:
		return SoundCastle
	case ply.CapturedPiece != nil:
		return SoundCapture
	}
	return SoundMove
}
