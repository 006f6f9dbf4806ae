package chess

import (
	"errors"
	"fmt"
)

// ErrMissingKing is the panic value (wrapped) raised when a side has no king on the board.
var ErrMissingKing = errors.New("king not found on board")

var (
	rookDirs   = []Position{{Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: -1, Col: 0}}
	bishopDirs = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{
		{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2},
		{Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
	}
	kingDirs = []Position{
		{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1}, {Row: 0, Col: -1},
		{Row: 0, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}
)

// IsSquareAttacked reports whether any piece of the side opposing defending attacks the square.
// It reads raw board contents only and never calls into move generation.
func (b *Board) IsSquareAttacked(row, col int, defending Color) bool {
	attacker := defending.Opponent()

	// An attacking pawn sits one row behind the square from its own point of view.
	pawnRow := row - attacker.Forward()
	for _, dc := range [2]int{-1, 1} {
		if inBounds(pawnRow, col+dc) {
			if p := b[pawnRow][col+dc]; p.Type == Pawn && p.Color == attacker {
				return true
			}
		}
	}

	for _, d := range knightDirs {
		r, c := row+d.Row, col+d.Col
		if inBounds(r, c) {
			if p := b[r][c]; p.Type == Knight && p.Color == attacker {
				return true
			}
		}
	}

	for _, d := range kingDirs {
		r, c := row+d.Row, col+d.Col
		if inBounds(r, c) {
			if p := b[r][c]; p.Type == King && p.Color == attacker {
				return true
			}
		}
	}

	if b.rayAttacked(row, col, attacker, rookDirs, Rook) {
		return true
	}
	return b.rayAttacked(row, col, attacker, bishopDirs, Bishop)
}

// rayAttacked walks each ray to its first occupied square and reports whether that occupant is an
// attacker of the given sliding kind or a queen.
func (b *Board) rayAttacked(row, col int, attacker Color, dirs []Position, slider PieceType) bool {
	for _, d := range dirs {
		r, c := row+d.Row, col+d.Col
		for inBounds(r, c) {
			if p := b[r][c]; !p.IsEmpty() {
				if p.Color == attacker && (p.Type == slider || p.Type == Queen) {
					return true
				}
				break
			}
			r += d.Row
			c += d.Col
		}
	}
	return false
}

// IsKingInCheck reports whether side's king is attacked. A board without that king is an
// invariant violation and panics.
func (b *Board) IsKingInCheck(side Color) bool {
	king, ok := b.FindKing(side)
	if !ok {
		panic(fmt.Errorf("%s: %w", side, ErrMissingKing))
	}
	return b.IsSquareAttacked(king.Row, king.Col, side)
}
