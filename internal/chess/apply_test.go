package chess_test

import (
	"encoding/json"
	"testing"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/testutil"
)

func TestApplyDoesNotModifyInputs(t *testing.T) {
	pos := testutil.StartPosition()
	board, state := pos.Board.Clone(), pos.State.Clone()

	m, ok := chess.FindLegalMove(&pos.Board, pos.State, chess.Move{FromRow: 6, FromCol: 4, ToRow: 4, ToCol: 4})
	testutil.AssertTruef(t, ok, "e2e4 legal")
	next, nextState, _ := chess.Apply(pos.Board, pos.State, m)

	testutil.AssertEqualf(t, pos.Board, board, "board after Apply")
	testutil.AssertEqualf(t, pos.State, state, "state after Apply")
	if next == pos.Board {
		t.Error("Apply returned the unchanged board")
	}
	if nextState.EnPassantTarget == nil {
		t.Fatal("double push should set an en-passant target")
	}
}

func TestSnapshotRestoresPriorPosition(t *testing.T) {
	pos := testutil.MustParseFEN(t, kiwipeteFEN)
	snapBoard, snapState, snapTurn := pos.Board.Clone(), pos.State.Clone(), pos.ToMove

	testutil.Play(t, &pos, "e1g1", "h3g2", "f3f6")
	if pos.Board == snapBoard {
		t.Fatal("moves had no effect")
	}

	pos.Board, pos.State, pos.ToMove = snapBoard, snapState, snapTurn
	fresh := testutil.MustParseFEN(t, kiwipeteFEN)
	testutil.AssertEqual(t, pos, fresh)
}

func TestEnPassantWindow(t *testing.T) {
	pos := testutil.StartPosition()

	testutil.Play(t, &pos, "e2e4")
	testutil.AssertEqualf(t, pos.State.EnPassantTarget, &chess.Position{Row: 5, Col: 4}, "after e2e4")

	testutil.Play(t, &pos, "g8f6")
	if pos.State.EnPassantTarget != nil {
		t.Errorf("target after a knight move = %v, want nil", pos.State.EnPassantTarget)
	}

	testutil.Play(t, &pos, "e4e5", "d7d5")
	testutil.AssertEqualf(t, pos.State.EnPassantTarget, &chess.Position{Row: 2, Col: 3}, "after d7d5")

	ep, ok := chess.FindLegalMove(&pos.Board, pos.State, chess.Move{FromRow: 3, FromCol: 4, ToRow: 2, ToCol: 3})
	if !ok || !ep.EnPassant {
		t.Fatalf("exd6 en passant = %+v, %v", ep, ok)
	}

	next, nextState, captured := chess.Apply(pos.Board, pos.State, ep)
	testutil.AssertEqualf(t, captured, &chess.Piece{Type: chess.Pawn, Color: chess.Black}, "captured piece")
	if !next.At(3, 3).IsEmpty() {
		t.Error("captured pawn still on d5")
	}
	testutil.AssertEqualf(t, next.At(2, 3), chess.Piece{Type: chess.Pawn, Color: chess.White}, "pawn on d6")
	if nextState.EnPassantTarget != nil {
		t.Error("en passant capture should clear the target")
	}
}

func TestStaleEnPassantTargetIsIllegal(t *testing.T) {
	pos := testutil.StartPosition()
	testutil.Play(t, &pos, "e2e4", "a7a6", "e4e5", "d7d5", "a2a3", "a6a5")

	if pos.State.EnPassantTarget != nil {
		t.Fatalf("target = %v, want nil", pos.State.EnPassantTarget)
	}
	if _, ok := chess.FindLegalMove(&pos.Board, pos.State, chess.Move{FromRow: 3, FromCol: 4, ToRow: 2, ToCol: 3}); ok {
		t.Error("exd6 allowed two moves after d7d5")
	}
}

func TestEnPassantExposingKingIsIllegal(t *testing.T) {
	// Removing both pawns from the fifth rank would expose the white king to the h5 rook.
	pos := testutil.MustParseFEN(t, "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	if _, ok := chess.FindLegalMove(&pos.Board, pos.State, chess.Move{FromRow: 3, FromCol: 4, ToRow: 2, ToCol: 3}); ok {
		t.Error("exd6 en passant should be illegal")
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		move      string
		side      chess.CastleSide
		kingTo    chess.Position
		rookFrom  chess.Position
		rookTo    chess.Position
		rookColor chess.Color
	}{
		{"white kingside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", chess.KingSide,
			chess.Position{Row: 7, Col: 6}, chess.Position{Row: 7, Col: 7}, chess.Position{Row: 7, Col: 5}, chess.White},
		{"white queenside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", chess.QueenSide,
			chess.Position{Row: 7, Col: 2}, chess.Position{Row: 7, Col: 0}, chess.Position{Row: 7, Col: 3}, chess.White},
		{"black kingside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8", chess.KingSide,
			chess.Position{Row: 0, Col: 6}, chess.Position{Row: 0, Col: 7}, chess.Position{Row: 0, Col: 5}, chess.Black},
		{"black queenside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", chess.QueenSide,
			chess.Position{Row: 0, Col: 2}, chess.Position{Row: 0, Col: 0}, chess.Position{Row: 0, Col: 3}, chess.Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := testutil.MustParseFEN(t, tt.fen)
			want, err := testutil.ParseMove(tt.move)
			testutil.AssertNoError(t, err)
			m, ok := chess.FindLegalMove(&pos.Board, pos.State, want)
			if !ok || m.Castle != tt.side {
				t.Fatalf("castle move = %+v, %v", m, ok)
			}

			next, st, captured := chess.Apply(pos.Board, pos.State, m)
			if captured != nil {
				t.Errorf("castling captured %v", captured)
			}
			testutil.AssertEqual(t, next.At(tt.kingTo.Row, tt.kingTo.Col), chess.Piece{Type: chess.King, Color: tt.rookColor})
			testutil.AssertEqual(t, next.At(tt.rookTo.Row, tt.rookTo.Col), chess.Piece{Type: chess.Rook, Color: tt.rookColor})
			if !next.At(tt.rookFrom.Row, tt.rookFrom.Col).IsEmpty() {
				t.Error("rook still on its home square")
			}
			testutil.AssertEqual(t, st.Castling(tt.rookColor), chess.CastlingRights{})
			testutil.AssertEqual(t, st.Castling(tt.rookColor.Opponent()), chess.CastlingRights{KingSide: true, QueenSide: true})
		})
	}
}

func TestCastlingRestrictions(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
	}{
		{"in check", "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1"},
		{"through attacked square", "5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1"},
		{"onto attacked square", "6rk/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1"},
		{"queenside through attacked square", "3r2k1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1c1"},
		{"piece in between", "6k1/8/8/8/8/8/8/RN2K2R w KQ - 0 1", "e1c1"},
		{"right revoked", "6k1/8/8/8/8/8/8/R3K2R w Q - 0 1", "e1g1"},
		{"rook missing", "6k1/8/8/8/8/8/8/4K2R w KQ - 0 1", "e1c1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := testutil.MustParseFEN(t, tt.fen)
			want, err := testutil.ParseMove(tt.move)
			testutil.AssertNoError(t, err)
			if m, ok := chess.FindLegalMove(&pos.Board, pos.State, want); ok {
				t.Errorf("%s should be illegal, got %+v", tt.move, m)
			}
		})
	}

	// The b-file square may be attacked; only the king's path matters.
	pos := testutil.MustParseFEN(t, "1r4k1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if _, ok := chess.FindLegalMove(&pos.Board, pos.State, chess.Move{FromRow: 7, FromCol: 4, ToRow: 7, ToCol: 2}); !ok {
		t.Error("queenside castling with b1 attacked should be legal")
	}
}

func TestCastlingRightsRevocation(t *testing.T) {
	pos := testutil.MustParseFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	testutil.Play(t, &pos, "h1h2")
	testutil.AssertEqualf(t, pos.State.WhiteCastle, chess.CastlingRights{QueenSide: true}, "after h1 rook moved")

	testutil.Play(t, &pos, "h8h7", "h2h1", "h7h8")
	testutil.AssertEqualf(t, pos.State.WhiteCastle, chess.CastlingRights{QueenSide: true}, "rook returning home")
	testutil.AssertEqualf(t, pos.State.BlackCastle, chess.CastlingRights{QueenSide: true}, "black rook returning home")

	testutil.Play(t, &pos, "a1a8")
	testutil.AssertEqualf(t, pos.State.WhiteCastle, chess.CastlingRights{}, "after a1 rook left")
	testutil.AssertEqualf(t, pos.State.BlackCastle, chess.CastlingRights{}, "after a8 rook captured")

	pos = testutil.MustParseFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	testutil.Play(t, &pos, "e8d8")
	testutil.AssertEqualf(t, pos.State.BlackCastle, chess.CastlingRights{}, "after king move")
	testutil.AssertEqualf(t, pos.State.WhiteCastle, chess.CastlingRights{KingSide: true, QueenSide: true}, "opponent rights")
}

func TestCastlingRevocationIsMonotonic(t *testing.T) {
	pos := testutil.MustParseFEN(t, kiwipeteFEN)
	held := func(st chess.State) [4]bool {
		return [4]bool{st.WhiteCastle.KingSide, st.WhiteCastle.QueenSide, st.BlackCastle.KingSide, st.BlackCastle.QueenSide}
	}

	for game := 0; game < 8; game++ {
		board, st, side := pos.Board, pos.State, pos.ToMove
		for ply := 0; ply < 60; ply++ {
			moves := chess.AllMoves(&board, side, st)
			if len(moves) == 0 {
				break
			}
			before := held(st)
			board, st, _ = chess.Apply(board, st, moves[(ply*7+game*13)%len(moves)])
			after := held(st)
			for i := range before {
				if !before[i] && after[i] {
					t.Fatalf("game %d ply %d: castling right %d restored", game, ply, i)
				}
			}
			side = side.Opponent()
		}
	}
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		name     string
		move     chess.Move
		want     chess.Piece
		captured *chess.Piece
	}{
		{"defaults to queen", chess.Move{FromRow: 1, FromCol: 0, ToRow: 0, ToCol: 0},
			chess.Piece{Type: chess.Queen, Color: chess.White}, nil},
		{"underpromotion", chess.Move{FromRow: 1, FromCol: 0, ToRow: 0, ToCol: 0, Promotion: chess.Knight},
			chess.Piece{Type: chess.Knight, Color: chess.White}, nil},
		{"capture promotion", chess.Move{FromRow: 1, FromCol: 0, ToRow: 0, ToCol: 1, Promotion: chess.Rook},
			chess.Piece{Type: chess.Rook, Color: chess.White}, &chess.Piece{Type: chess.Knight, Color: chess.Black}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := testutil.MustParseFEN(t, "1n5k/P7/8/8/8/8/8/4K3 w - - 0 1")
			m, ok := chess.FindLegalMove(&pos.Board, pos.State, tt.move)
			if !ok {
				t.Fatalf("%s not legal", tt.move)
			}
			if !chess.NeedsPromotion(&pos.Board, m) {
				t.Error("NeedsPromotion = false")
			}
			next, _, captured := chess.Apply(pos.Board, pos.State, m)
			testutil.AssertEqual(t, next.At(tt.move.ToRow, tt.move.ToCol), tt.want)
			testutil.AssertEqual(t, captured, tt.captured)
		})
	}
}

func TestPromotionsExpandsEveryKind(t *testing.T) {
	m := chess.Move{FromRow: 1, FromCol: 0, ToRow: 0, ToCol: 0}
	var kinds []chess.PieceType
	for _, p := range chess.Promotions(m) {
		testutil.AssertTruef(t, p.SameSquares(m), "%s changed squares", p)
		kinds = append(kinds, p.Promotion)
	}
	testutil.AssertEqual(t, kinds, []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight})
}

func TestPositionSurvivesJSON(t *testing.T) {
	pos := testutil.StartPosition()
	testutil.Play(t, &pos, "e2e4", "c7c5", "g1f3")
	moves := chess.AllMoves(&pos.Board, pos.ToMove, pos.State)

	type saved struct {
		Board  chess.Board      `json:"board"`
		State  chess.State      `json:"gameState"`
		ToMove chess.Color      `json:"currentTurn"`
		Moves  []chess.Move     `json:"moves"`
		Status chess.GameStatus `json:"status"`
	}
	in := saved{Board: pos.Board, State: pos.State, ToMove: pos.ToMove, Moves: moves,
		Status: chess.Status(&pos.Board, pos.ToMove, pos.State)}

	data, err := json.Marshal(in)
	testutil.AssertNoError(t, err)
	var out saved
	testutil.AssertNoError(t, json.Unmarshal(data, &out))
	testutil.AssertEqual(t, out, in)
}
