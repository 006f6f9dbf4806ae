// Package config holds the server settings.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chessai-backend/internal/search"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// AllowOrigins is the comma separated CORS origin list.
	AllowOrigins string
	// ReplyDelay is the pause before the computer starts thinking.
	ReplyDelay time.Duration
	// SearchTimeout bounds one computer search.
	SearchTimeout     time.Duration
	DefaultDifficulty int
	// MaxDepth caps the search depth whatever the difficulty.
	MaxDepth        int
	ReadBufferSize  int
	WriteBufferSize int
}

func Default() Config {
	return Config{
		Addr:              ":8080",
		AllowOrigins:      "http://localhost:5173",
		ReplyDelay:        500 * time.Millisecond,
		SearchTimeout:     30 * time.Second,
		DefaultDifficulty: 5,
		MaxDepth:          search.MaxDepth,
		ReadBufferSize:    1024,
		WriteBufferSize:   1024,
	}
}

// Load parses command line flags over the defaults.
func Load(args []string) (Config, error) {
	return load(args, os.Stderr)
}

func load(args []string, output io.Writer) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "origins", cfg.AllowOrigins, "comma separated CORS origins")
	fs.DurationVar(&cfg.ReplyDelay, "reply-delay", cfg.ReplyDelay, "pause before the computer replies")
	fs.DurationVar(&cfg.SearchTimeout, "search-timeout", cfg.SearchTimeout, "upper bound for one computer search")
	fs.IntVar(&cfg.DefaultDifficulty, "difficulty", cfg.DefaultDifficulty, "difficulty of new games (1-10)")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "search depth cap in plies")
	fs.IntVar(&cfg.ReadBufferSize, "ws-read-buffer", cfg.ReadBufferSize, "websocket read buffer size")
	fs.IntVar(&cfg.WriteBufferSize, "ws-write-buffer", cfg.WriteBufferSize, "websocket write buffer size")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []string
	if c.Addr == "" {
		problems = append(problems, "addr is empty")
	}
	if c.ReplyDelay < 0 {
		problems = append(problems, "reply delay is negative")
	}
	if c.SearchTimeout <= 0 {
		problems = append(problems, "search timeout must be positive")
	}
	if c.DefaultDifficulty < search.MinStrength || c.DefaultDifficulty > search.MaxStrength {
		problems = append(problems, fmt.Sprintf("difficulty %d not in %d..%d", c.DefaultDifficulty, search.MinStrength, search.MaxStrength))
	}
	if c.MaxDepth < 1 || c.MaxDepth > search.MaxDepth {
		problems = append(problems, fmt.Sprintf("max depth %d not in 1..%d", c.MaxDepth, search.MaxDepth))
	}
	if c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0 {
		problems = append(problems, "websocket buffer sizes must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
