package chess

import "fmt"

// PieceType is the closed set of chess piece kinds. The zero value is an empty square.
type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PromotionTypes lists the kinds a pawn may promote to, strongest first.
var PromotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

// Letter returns the display letter for the piece kind. Pawns have none.
func (p PieceType) Letter() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// IsPromotion reports whether a pawn may promote to p.
func (p PieceType) IsPromotion() bool {
	switch p {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	t, err := ParsePieceType(string(text))
	if err != nil {
		return err
	}
	*p = t
	return nil
}

// ParsePieceType accepts the lowercase piece names used on the wire. The empty string is NoPiece.
func ParsePieceType(s string) (PieceType, error) {
	switch s {
	case "":
		return NoPiece, nil
	case "pawn":
		return Pawn, nil
	case "knight":
		return Knight, nil
	case "bishop":
		return Bishop, nil
	case "rook":
		return Rook, nil
	case "queen":
		return Queen, nil
	case "king":
		return King, nil
	}
	return NoPiece, fmt.Errorf("unknown piece type %q", s)
}

// Color is one of the two sides.
type Color uint8

const (
	White Color = iota
	Black
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the row delta of a pawn advance. White starts on rows 6-7 and moves toward row 0.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// BackRank is the row holding the side's king and rooks at the start of the game.
func (c Color) BackRank() int {
	if c == White {
		return 7
	}
	return 0
}

// PawnRank is the row the side's pawns start on.
func (c Color) PawnRank() int {
	if c == White {
		return 6
	}
	return 1
}

// LastRank is the row on which the side's pawns promote.
func (c Color) LastRank() int {
	return c.Opponent().BackRank()
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	col, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = col
	return nil
}

// ParseColor accepts "white" or "black".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

// Piece is an immutable (kind, side) pair. Promotion replaces the piece, it never mutates one.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// IsEmpty reports whether p stands for an empty square.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}
