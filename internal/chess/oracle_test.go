package chess_test

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/testutil"
)

// dragonDivide counts leaves below each root move using an independent bitboard generator.
func dragonDivide(fen string, depth int) map[string]int {
	board := dragontoothmg.ParseFen(fen)
	out := make(map[string]int)
	for _, m := range board.GenerateLegalMoves() {
		undo := board.Apply(m)
		out[m.String()] = dragonPerft(&board, depth-1)
		undo()
	}
	return out
}

func dragonPerft(b *dragontoothmg.Board, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return len(moves)
	}
	n := 0
	for _, m := range moves {
		undo := b.Apply(m)
		n += dragonPerft(b, depth-1)
		undo()
	}
	return n
}

func TestMoveGenerationMatchesBitboardGenerator(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		depth int
	}{
		{"start", testutil.StartFEN, nil, 3},
		{"kiwipete", kiwipeteFEN, nil, 2},
		{"position 3", position3FEN, nil, 3},
		{"position 4", position4FEN, nil, 2},
		{"position 5", position5FEN, nil, 2},
		{"open game with en passant", testutil.StartFEN, []string{"e2e4", "a7a6", "e4e5", "d7d5"}, 2},
		{"kiwipete after castling", kiwipeteFEN, []string{"e1c1", "e8g8"}, 2},
		{"promotion race", "8/P6k/8/8/8/8/6Kp/8 w - - 0 1", nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := testutil.MustParseFEN(t, tt.fen)
			testutil.Play(t, &pos, tt.moves...)
			fen := testutil.FEN(&pos.Board, pos.ToMove, pos.State)

			got := chess.Divide(pos.Board, pos.ToMove, pos.State, tt.depth)
			testutil.AssertEqualf(t, got, dragonDivide(fen, tt.depth), "%s", fen)
		})
	}
}
