// Package arena plays computer-vs-computer matches between two strengths.
package arena

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/benbeisheim/chessai-backend/internal/search"
)

var ErrInvalidMatch = errors.New("invalid match")

type Config struct {
	StrengthA   int
	StrengthB   int
	Games       int
	MaxPlies    int
	Concurrency int
	// MaxDepth caps both players' search depth; 0 keeps the search default.
	MaxDepth int
	// Seed makes a match reproducible. Game n seeds its players from Seed and n.
	Seed uint64
}

func (c Config) validate() error {
	var problems []string
	if c.StrengthA < search.MinStrength || c.StrengthA > search.MaxStrength ||
		c.StrengthB < search.MinStrength || c.StrengthB > search.MaxStrength {
		problems = append(problems, fmt.Sprintf("strengths must be in %d..%d", search.MinStrength, search.MaxStrength))
	}
	if c.Games < 1 {
		problems = append(problems, "games must be positive")
	}
	if c.MaxPlies < 1 {
		problems = append(problems, "max plies must be positive")
	}
	if c.Concurrency < 1 {
		problems = append(problems, "concurrency must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidMatch, problems)
	}
	return nil
}

// Report is the match score from player A's point of view.
type Report struct {
	Wins, Losses, Draws int
	Games               []GameResult
}

// Score is A's winning fraction with draws counted as half.
func (r Report) Score() float64 {
	n := r.Wins + r.Losses + r.Draws
	if n == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Draws)) / float64(n)
}

// EloDifference estimates A's rating edge over B. It is infinite after a clean sweep.
func (r Report) EloDifference() float64 {
	return -math.Log(1/r.Score()-1) * 400 / math.Ln10
}

func (r *Report) add(g GameResult) {
	switch {
	case g.Outcome == Draw:
		r.Draws++
	case (g.Outcome == WhiteWins) == g.AIsWhite:
		r.Wins++
	default:
		r.Losses++
	}
	r.Games = append(r.Games, g)
}

// Run plays cfg.Games games, alternating colors, on cfg.Concurrency workers. onResult, if not nil,
// is called from a single goroutine as each game finishes.
func Run(ctx context.Context, cfg Config, onResult func(GameResult)) (Report, error) {
	if err := cfg.validate(); err != nil {
		return Report{}, err
	}

	g, ctx := errgroup.WithContext(ctx)

	numbers := make(chan int)
	results := make(chan GameResult)

	g.Go(func() error {
		defer close(numbers)
		for n := 1; n <= cfg.Games; n++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case numbers <- n:
			}
		}
		return nil
	})

	var report Report
	g.Go(func() error {
		for res := range results {
			report.add(res)
			if onResult != nil {
				onResult(res)
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, cfg, numbers, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	sort.Slice(report.Games, func(i, j int) bool {
		return report.Games[i].Number < report.Games[j].Number
	})
	return report, nil
}

func playGames(ctx context.Context, cfg Config, numbers <-chan int, results chan<- GameResult) error {
	for n := range numbers {
		aIsWhite := n%2 == 1
		a := newPlayer(cfg, cfg.StrengthA, uint64(2*n))
		b := newPlayer(cfg, cfg.StrengthB, uint64(2*n+1))
		white, black := a, b
		if !aIsWhite {
			white, black = b, a
		}

		res, err := playGame(ctx, startPosition(), white, black, cfg.MaxPlies)
		if err != nil {
			return fmt.Errorf("game %d: %w", n, err)
		}
		res.Number = n
		res.AIsWhite = aIsWhite

		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- res:
		}
	}
	return nil
}

func newPlayer(cfg Config, strength int, salt uint64) Player {
	opts := []search.Option{search.WithSeed(cfg.Seed*1000003 + salt)}
	if cfg.MaxDepth > 0 {
		opts = append(opts, search.WithMaxDepth(cfg.MaxDepth))
	}
	return Player{Searcher: search.New(opts...), Strength: strength}
}
