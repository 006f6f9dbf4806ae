package eval

import (
	"testing"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/testutil"
)

func TestStartPositionIsBalanced(t *testing.T) {
	b := chess.NewBoard()
	if got := Evaluate(&b, chess.White); got != 0 {
		t.Errorf("Evaluate(start, white) = %d, want 0", got)
	}
}

func TestEvaluationSymmetry(t *testing.T) {
	fens := []string{
		testutil.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	}
	for _, fen := range fens {
		pos := testutil.MustParseFEN(t, fen)
		white, black := Evaluate(&pos.Board, chess.White), Evaluate(&pos.Board, chess.Black)
		if white != -black {
			t.Errorf("%s: white %d, black %d", fen, white, black)
		}
	}
}

func TestMirroredPositionsScoreEqually(t *testing.T) {
	// The same structure with colours swapped and the board flipped.
	w := testutil.MustParseFEN(t, "4k3/8/8/8/3N4/8/1P6/4K3 w - - 0 1")
	b := testutil.MustParseFEN(t, "4k3/1p6/8/3n4/8/8/8/4K3 b - - 0 1")
	if got, want := Evaluate(&b.Board, chess.Black), Evaluate(&w.Board, chess.White); got != want {
		t.Errorf("mirrored score = %d, want %d", got, want)
	}
}

func TestMaterialDominates(t *testing.T) {
	pos := testutil.MustParseFEN(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if got := Evaluate(&pos.Board, chess.White); got < Material[chess.Queen]-50 {
		t.Errorf("queen up scores %d", got)
	}
}

func TestPositionalBonusMirrors(t *testing.T) {
	tests := []struct {
		kind     chess.PieceType
		row, col int
	}{
		{chess.Pawn, 6, 3},
		{chess.Knight, 4, 4},
		{chess.King, 7, 6},
		{chess.Rook, 1, 0},
	}
	for _, tt := range tests {
		white := PositionalBonus(tt.kind, tt.row, tt.col, chess.White)
		black := PositionalBonus(tt.kind, 7-tt.row, tt.col, chess.Black)
		if white != black {
			t.Errorf("%s at %d,%d: white %d, black mirrored %d", tt.kind, tt.row, tt.col, white, black)
		}
	}
	if got := PositionalBonus(chess.NoPiece, 0, 0, chess.White); got != 0 {
		t.Errorf("empty square bonus = %d", got)
	}
}
