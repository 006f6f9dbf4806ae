package chess

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Board is the 8x8 grid. Row 0 is black's back rank (rank 8), column 0 is the a-file.
// Pieces are stored by value, so copying a Board yields a fully independent position.
type Board [8][8]Piece

// Position addresses one square.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return inBounds(p.Row, p.Col)
}

// Notation returns the square name, e.g. row 0 col 0 is "a8".
func (p Position) Notation() string {
	return ToNotation(p.Row, p.Col)
}

// File returns the file letter of the position.
func (p Position) File() string {
	return fmt.Sprintf("%c", 'a'+p.Col)
}

// ToNotation maps board coordinates to a file letter and rank number.
func ToNotation(row, col int) string {
	return fmt.Sprintf("%c%d", 'a'+col, 8-row)
}

func inBounds(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

var backRankOrder = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for col, t := range backRankOrder {
		b[0][col] = Piece{Type: t, Color: Black}
		b[7][col] = Piece{Type: t, Color: White}
		b[1][col] = Piece{Type: Pawn, Color: Black}
		b[6][col] = Piece{Type: Pawn, Color: White}
	}
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board {
	return *b
}

// At returns the piece on a square. Empty squares yield the zero Piece.
func (b *Board) At(row, col int) Piece {
	return b[row][col]
}

// Set places p on a square. Passing the zero Piece clears it.
func (b *Board) Set(row, col int, p Piece) {
	b[row][col] = p
}

// Count returns how many pieces of the given kind and side are on the board.
func (b *Board) Count(t PieceType, c Color) int {
	n := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p.Type == t && p.Color == c {
				n++
			}
		}
	}
	return n
}

// FindKing locates the side's king.
func (b *Board) FindKing(side Color) (Position, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p.Type == King && p.Color == side {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// MarshalJSON encodes the board as rows of pieces with null for empty squares.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, 8)
	for row := 0; row < 8; row++ {
		rows[row] = make([]*Piece, 8)
		for col := 0; col < 8; col++ {
			if p := b[row][col]; !p.IsEmpty() {
				rows[row][col] = &p
			}
		}
	}
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != 8 {
		return errors.New("board must have 8 rows")
	}
	var out Board
	for row := range rows {
		if len(rows[row]) != 8 {
			return fmt.Errorf("board row %d must have 8 squares", row)
		}
		for col, p := range rows[row] {
			if p != nil {
				out[row][col] = *p
			}
		}
	}
	*b = out
	return nil
}

// String draws the board with uppercase white and lowercase black letters.
func (b *Board) String() string {
	s := ""
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			switch {
			case p.IsEmpty():
				s += "."
			case p.Type == Pawn && p.Color == White:
				s += "P"
			case p.Type == Pawn:
				s += "p"
			case p.Color == White:
				s += p.Type.Letter()
			default:
				s += string(p.Type.Letter()[0] + 'a' - 'A')
			}
		}
		s += "\n"
	}
	return s
}
