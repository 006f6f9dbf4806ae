// Package search picks the computer's move with a fixed-depth minimax and alpha-beta pruning.
package search

import (
	"context"
	"slices"
	"time"

	"golang.org/x/exp/rand"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/eval"
)

// MateScore outweighs any material balance. A mate found at ply n scores MateScore-n, so shorter
// mates are preferred and longer ones are delayed.
const MateScore = 100000

const infinity = 1 << 30

// Result describes the outcome of one search.
type Result struct {
	Move   chess.Move `json:"move"`
	Found  bool       `json:"found"`
	Score  int        `json:"score"`
	Depth  int        `json:"depth"`
	Nodes  int        `json:"nodes"`
	Random bool       `json:"random"`
}

type Option func(*Searcher)

// WithSeed makes the perturbation and random-move choices reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithoutNoise disables the score perturbation and the random-move shortcut.
func WithoutNoise() Option {
	return func(s *Searcher) {
		s.noNoise = true
	}
}

// WithMaxDepth lowers the depth cap. Values outside 1..MaxDepth are ignored.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth >= 1 && depth <= MaxDepth {
			s.maxDepth = depth
		}
	}
}

// Searcher holds the random source used for weaker play. A Searcher is not safe for concurrent
// use; searches themselves share no state and may run in parallel on separate Searchers.
type Searcher struct {
	rng      *rand.Rand
	maxDepth int
	noNoise  bool
}

func New(opts ...Option) *Searcher {
	s := &Searcher{
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		maxDepth: MaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BestMove searches with a fresh time-seeded Searcher. ok is false when side has no legal move.
func BestMove(b chess.Board, side chess.Color, st chess.State, strength int) (chess.Move, bool) {
	res, err := New().Search(context.Background(), b, side, st, strength)
	if err != nil {
		return chess.Move{}, false
	}
	return res.Move, res.Found
}

// Search chooses a move for side. The board and state are copied, never modified. Result.Found is
// false when side has no legal move. The only error is the context's, when it ends mid-search.
func (s *Searcher) Search(ctx context.Context, b chess.Board, side chess.Color, st chess.State, strength int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	strength = ClampStrength(strength)

	moves := chess.AllMoves(&b, side, st)
	if len(moves) == 0 {
		return Result{}, nil
	}

	if !s.noNoise && strength <= RandomMoveStrength && s.rng.Intn(2) == 0 {
		m := moves[s.rng.Intn(len(moves))]
		return Result{Move: withDefaultPromotion(&b, m), Found: true, Random: true}, nil
	}

	depth := Depth(strength)
	if depth > s.maxDepth {
		depth = s.maxDepth
	}
	noise := Noise(strength)
	if s.noNoise {
		noise = 0
	}

	r := &run{ctx: ctx, side: side}
	best := Result{Found: true, Depth: depth, Score: -infinity}
	for i, m := range moves {
		m = withDefaultPromotion(&b, m)
		next, nextState, _ := chess.Apply(b, st, m)

		// Without noise a child that cannot beat the best so far needs no exact score.
		alpha := -infinity
		if noise == 0 && i > 0 {
			alpha = best.Score
		}
		score := r.minimax(next, nextState, depth-1, alpha, infinity, false, 1)
		if r.aborted {
			return Result{}, ctx.Err()
		}
		if noise > 0 {
			score += s.rng.Intn(noise+1) - noise/2
		}
		if score > best.Score {
			best.Score = score
			best.Move = m
		}
	}
	best.Nodes = r.nodes
	return best, nil
}

// run is the per-search state of one tree walk.
type run struct {
	ctx     context.Context
	side    chess.Color
	nodes   int
	aborted bool
}

func (r *run) minimax(b chess.Board, st chess.State, depth, alpha, beta int, maximizing bool, ply int) int {
	r.nodes++
	if r.nodes&1023 == 0 && r.ctx.Err() != nil {
		r.aborted = true
	}
	if r.aborted {
		return 0
	}
	if depth == 0 {
		return eval.Evaluate(&b, r.side)
	}

	toMove := r.side
	if !maximizing {
		toMove = r.side.Opponent()
	}
	moves := chess.AllMoves(&b, toMove, st)
	if len(moves) == 0 {
		if b.IsKingInCheck(toMove) {
			if maximizing {
				return -(MateScore - ply)
			}
			return MateScore - ply
		}
		return 0
	}
	orderMoves(&b, moves)

	if maximizing {
		best := -infinity
		for _, m := range moves {
			next, nextState, _ := chess.Apply(b, st, m)
			score := r.minimax(next, nextState, depth-1, alpha, beta, false, ply+1)
			best = max(best, score)
			alpha = max(alpha, score)
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := infinity
	for _, m := range moves {
		next, nextState, _ := chess.Apply(b, st, m)
		score := r.minimax(next, nextState, depth-1, alpha, beta, true, ply+1)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

// withDefaultPromotion makes the computer promote to a queen.
func withDefaultPromotion(b *chess.Board, m chess.Move) chess.Move {
	if m.Promotion == chess.NoPiece && chess.NeedsPromotion(b, m) {
		m.Promotion = chess.Queen
	}
	return m
}

var orderValue = [...]int{
	chess.NoPiece: 0,
	chess.Pawn:    1,
	chess.Knight:  3,
	chess.Bishop:  3,
	chess.Rook:    5,
	chess.Queen:   9,
	chess.King:    10,
}

// orderMoves puts captures first, most valuable victim then least valuable attacker. The minimax
// value of a node does not depend on the order of its children, only the amount of pruning does.
func orderMoves(b *chess.Board, moves []chess.Move) {
	slices.SortStableFunc(moves, func(x, y chess.Move) int {
		return moveOrderScore(b, y) - moveOrderScore(b, x)
	})
}

func moveOrderScore(b *chess.Board, m chess.Move) int {
	score := 0
	attacker := b.At(m.FromRow, m.FromCol)
	if victim := b.At(m.ToRow, m.ToCol); !victim.IsEmpty() {
		score = 16*orderValue[victim.Type] - orderValue[attacker.Type] + 16
	} else if m.EnPassant {
		score = 16*orderValue[chess.Pawn] - orderValue[chess.Pawn] + 16
	}
	if attacker.Type == chess.Pawn && m.ToRow == attacker.Color.LastRank() {
		score += 16 * orderValue[chess.Queen]
	}
	return score
}
