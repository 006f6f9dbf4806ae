package arena

import (
	"context"
	"testing"

	"github.com/benbeisheim/chessai-backend/internal/search"
	"github.com/benbeisheim/chessai-backend/internal/testutil"
)

func fromFEN(t *testing.T, fen string) position {
	t.Helper()
	p := testutil.MustParseFEN(t, fen)
	return position{board: p.Board, state: p.State, toMove: p.ToMove}
}

func sharp() Player {
	return Player{Searcher: search.New(search.WithoutNoise(), search.WithMaxDepth(2)), Strength: 10}
}

func TestPlayGame(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		maxPlies   int
		wantResult Outcome
		wantPlies  int
		wantReason string
	}{
		{"mate in one", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 10, WhiteWins, 1, "checkmate"},
		{"already stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 10, Draw, 0, "stalemate"},
		{"ply limit", testutil.StartFEN, 3, Draw, 3, "ply limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := playGame(context.Background(), fromFEN(t, tt.fen), sharp(), sharp(), tt.maxPlies)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, res.Outcome, tt.wantResult)
			testutil.AssertEqual(t, res.Plies, tt.wantPlies)
			testutil.AssertEqual(t, res.Reason, tt.wantReason)
			testutil.AssertEqual(t, len(res.Moves), tt.wantPlies)
		})
	}
}

func TestPlayGameRecordsNotation(t *testing.T) {
	res, err := playGame(context.Background(), fromFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"), sharp(), sharp(), 10)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, res.Moves, []string{"Ra1-a8#"})
}

func quickMatch() Config {
	return Config{
		StrengthA:   2,
		StrengthB:   1,
		Games:       4,
		MaxPlies:    16,
		Concurrency: 2,
		MaxDepth:    1,
		Seed:        7,
	}
}

func TestRun(t *testing.T) {
	var seen int
	report, err := Run(context.Background(), quickMatch(), func(GameResult) { seen++ })
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, seen, 4)
	testutil.AssertEqual(t, report.Wins+report.Losses+report.Draws, 4)
	testutil.AssertEqual(t, len(report.Games), 4)
	for i, g := range report.Games {
		testutil.AssertEqual(t, g.Number, i+1)
		testutil.AssertEqual(t, g.AIsWhite, g.Number%2 == 1)
		testutil.AssertTruef(t, g.Plies <= 16, "game %d ran %d plies", g.Number, g.Plies)
	}
}

func TestRunIsReproducible(t *testing.T) {
	first, err := Run(context.Background(), quickMatch(), nil)
	testutil.AssertNoError(t, err)
	second, err := Run(context.Background(), quickMatch(), nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, first, second)
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfg := quickMatch()
	cfg.Games = 0
	_, err := Run(context.Background(), cfg, nil)
	testutil.AssertErrorIs(t, err, ErrInvalidMatch)

	cfg = quickMatch()
	cfg.StrengthB = 11
	_, err = Run(context.Background(), cfg, nil)
	testutil.AssertErrorIs(t, err, ErrInvalidMatch)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, quickMatch(), nil)
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestReportScore(t *testing.T) {
	r := Report{Wins: 3, Losses: 1, Draws: 2}
	testutil.AssertEqual(t, r.Score(), 4.0/6.0)
	testutil.AssertTruef(t, r.EloDifference() > 0, "elo %v", r.EloDifference())

	even := Report{Wins: 1, Losses: 1}
	testutil.AssertEqual(t, even.EloDifference(), 0.0)
}
