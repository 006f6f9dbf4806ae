package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/benbeisheim/chessai-backend/internal/arena"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var cfg arena.Config
	flag.IntVar(&cfg.StrengthA, "a", 6, "strength of engine A (1-10)")
	flag.IntVar(&cfg.StrengthB, "b", 4, "strength of engine B (1-10)")
	flag.IntVar(&cfg.Games, "games", 20, "number of games")
	flag.IntVar(&cfg.MaxPlies, "max-plies", 200, "plies after which a game is scored as a draw")
	flag.IntVar(&cfg.Concurrency, "concurrency", runtime.NumCPU(), "games played at once")
	flag.IntVar(&cfg.MaxDepth, "max-depth", 0, "search depth cap, 0 for the default")
	flag.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	verbose := flag.Bool("v", false, "print the moves of each game")
	flag.Parse()

	log.Printf("%+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	report, err := arena.Run(ctx, cfg, func(g arena.GameResult) {
		log.Printf("Finished game %d: %v {%s, %d plies}", g.Number, g.Outcome, g.Reason, g.Plies)
		if *verbose {
			log.Println(strings.Join(g.Moves, " "))
		}
	})
	if err != nil {
		return err
	}

	log.Printf("Score: %d - %d - %d  [%.3f] %d", report.Wins, report.Losses, report.Draws, report.Score(), len(report.Games))
	log.Printf("Elo difference: %.1f", report.EloDifference())
	log.Printf("Elapsed: %s", time.Since(start).Round(time.Millisecond))
	return nil
}
