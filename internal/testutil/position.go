package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/benbeisheim/chessai-backend/internal/chess"
)

// Position bundles what a test needs to set up a game.
type Position struct {
	Board  chess.Board
	State  chess.State
	ToMove chess.Color
}

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var letterTypes = map[byte]chess.PieceType{
	'p': chess.Pawn, 'n': chess.Knight, 'b': chess.Bishop,
	'r': chess.Rook, 'q': chess.Queen, 'k': chess.King,
}

// ParseFEN builds a test position from the first four FEN fields.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("fen %q: need at least 4 fields", fen)
	}

	var pos Position
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("fen %q: need 8 ranks", fen)
	}
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			color := chess.White
			lower := ch
			if ch >= 'a' && ch <= 'z' {
				color = chess.Black
			} else {
				lower = ch + 'a' - 'A'
			}
			t, ok := letterTypes[lower]
			if !ok || col > 7 {
				return Position{}, fmt.Errorf("fen %q: bad rank %q", fen, rank)
			}
			pos.Board[row][col] = chess.Piece{Type: t, Color: color}
			col++
		}
		if col != 8 {
			return Position{}, fmt.Errorf("fen %q: rank %q has %d files", fen, rank, col)
		}
	}

	switch fields[1] {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return Position{}, fmt.Errorf("fen %q: bad side %q", fen, fields[1])
	}

	pos.State.WhiteCastle.KingSide = strings.Contains(fields[2], "K")
	pos.State.WhiteCastle.QueenSide = strings.Contains(fields[2], "Q")
	pos.State.BlackCastle.KingSide = strings.Contains(fields[2], "k")
	pos.State.BlackCastle.QueenSide = strings.Contains(fields[2], "q")

	if ep := fields[3]; ep != "-" {
		if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || ep[1] < '1' || ep[1] > '8' {
			return Position{}, fmt.Errorf("fen %q: bad en passant square %q", fen, ep)
		}
		pos.State.EnPassantTarget = &chess.Position{Row: int('8' - ep[1]), Col: int(ep[0] - 'a')}
	}
	return pos, nil
}

// MustParseFEN is ParseFEN that fails the test on error.
func MustParseFEN(t testing.TB, fen string) Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return pos
}

// FEN encodes a position so it can be handed to other move generators.
func FEN(b *chess.Board, toMove chess.Color, st chess.State) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.At(row, col)
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := "p"
			if p.Type != chess.Pawn {
				letter = strings.ToLower(p.Type.Letter())
			}
			if p.Color == chess.White {
				letter = strings.ToUpper(letter)
			}
			sb.WriteString(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	if toMove == chess.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	castle := ""
	if st.WhiteCastle.KingSide {
		castle += "K"
	}
	if st.WhiteCastle.QueenSide {
		castle += "Q"
	}
	if st.BlackCastle.KingSide {
		castle += "k"
	}
	if st.BlackCastle.QueenSide {
		castle += "q"
	}
	if castle == "" {
		castle = "-"
	}
	sb.WriteString(castle)

	if st.EnPassantTarget != nil {
		sb.WriteString(" " + st.EnPassantTarget.Notation())
	} else {
		sb.WriteString(" -")
	}
	sb.WriteString(" 0 1")
	return sb.String()
}

// ParseMove reads a coordinate move such as "e2e4" or "e7e8q". Tags are left for the generator.
func ParseMove(s string) (chess.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return chess.Move{}, fmt.Errorf("bad move %q", s)
	}
	for i := 0; i < 4; i += 2 {
		if s[i] < 'a' || s[i] > 'h' || s[i+1] < '1' || s[i+1] > '8' {
			return chess.Move{}, fmt.Errorf("bad move %q", s)
		}
	}
	m := chess.Move{
		FromRow: int('8' - s[1]), FromCol: int(s[0] - 'a'),
		ToRow: int('8' - s[3]), ToCol: int(s[2] - 'a'),
	}
	if len(s) == 5 {
		t, ok := letterTypes[s[4]]
		if !ok || !t.IsPromotion() {
			return chess.Move{}, fmt.Errorf("bad promotion in %q", s)
		}
		m.Promotion = t
	}
	return m, nil
}

// Play applies coordinate moves to pos in order, failing the test on an illegal one. It returns
// the captured piece of the last move.
func Play(t testing.TB, pos *Position, moves ...string) *chess.Piece {
	t.Helper()
	var captured *chess.Piece
	for _, s := range moves {
		want, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		if pos.Board.At(want.FromRow, want.FromCol).Color != pos.ToMove {
			t.Fatalf("move %s: not %s's piece", s, pos.ToMove)
		}
		m, ok := chess.FindLegalMove(&pos.Board, pos.State, want)
		if !ok {
			t.Fatalf("move %s is not legal in\n%s", s, pos.Board.String())
		}
		pos.Board, pos.State, captured = chess.Apply(pos.Board, pos.State, m)
		pos.ToMove = pos.ToMove.Opponent()
	}
	return captured
}

// StartPosition returns the standard initial position with white to move.
func StartPosition() Position {
	return Position{Board: chess.NewBoard(), State: chess.NewState(), ToMove: chess.White}
}
