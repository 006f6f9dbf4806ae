package model

import (
	"fmt"

	"github.com/benbeisheim/chessai-backend/internal/chess"
)

const savedGameVersion = 1

// SavedGame is the portable form of a game. A pending promotion and the undo stack are not part
// of it.
type SavedGame struct {
	Version        int            `json:"version"`
	Board          chess.Board    `json:"board"`
	State          chess.State    `json:"state"`
	ToMove         chess.Color    `json:"toMove"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *SimpleMove    `json:"lastMove"`
	Difficulty     int            `json:"difficulty"`
	HumanColor     chess.Color    `json:"humanColor"`
	Resigned       bool           `json:"resigned,omitempty"`
}

func (g *Game) Snapshot() SavedGame {
	g.mu.Lock()
	defer g.mu.Unlock()

	var last *SimpleMove
	if g.lastMove != nil {
		m := *g.lastMove
		last = &m
	}
	return SavedGame{
		Version:        savedGameVersion,
		Board:          g.board,
		State:          g.state.Clone(),
		ToMove:         g.toMove,
		MoveHistory:    append(make([]Ply, 0, len(g.history)), g.history...),
		CapturedPieces: g.captured.clone(),
		LastMove:       last,
		Difficulty:     g.difficulty,
		HumanColor:     g.players.Human().Color,
		Resigned:       g.resigned,
	}
}

// RestoreGame rebuilds a game from a SavedGame under a new ID, owned by humanID. The status is
// derived from the position again rather than trusted.
func RestoreGame(id, humanID string, saved SavedGame) (*Game, error) {
	if saved.Version != savedGameVersion {
		return nil, fmt.Errorf("version %d: %w", saved.Version, ErrInvalidSnapshot)
	}
	for _, c := range []chess.Color{chess.White, chess.Black} {
		if n := saved.Board.Count(chess.King, c); n != 1 {
			return nil, fmt.Errorf("%s has %d kings: %w", c, n, ErrInvalidSnapshot)
		}
	}
	if saved.Board.IsKingInCheck(saved.ToMove.Opponent()) {
		return nil, fmt.Errorf("%s to move can capture the king: %w", saved.ToMove, ErrInvalidSnapshot)
	}
	if saved.LastMove != nil && (!saved.LastMove.From.InBounds() || !saved.LastMove.To.InBounds()) {
		return nil, fmt.Errorf("last move off the board: %w", ErrInvalidSnapshot)
	}
	if ep := saved.State.EnPassantTarget; ep != nil && !ep.InBounds() {
		return nil, fmt.Errorf("en passant target off the board: %w", ErrInvalidSnapshot)
	}

	g, err := NewGame(id, humanID, saved.HumanColor, saved.Difficulty)
	if err != nil {
		return nil, err
	}

	g.board = saved.Board
	g.state = saved.State.Clone()
	g.toMove = saved.ToMove
	g.status = chess.Status(&g.board, g.toMove, g.state)
	if saved.Resigned && !g.status.IsOver() {
		winner := g.players.Computer().Color
		g.status = chess.GameStatus{Status: chess.Checkmate, Winner: &winner}
		g.resigned = true
	}
	g.history = append(make([]Ply, 0, len(saved.MoveHistory)), saved.MoveHistory...)
	g.captured = saved.CapturedPieces.clone()
	g.lastMove = saved.LastMove

	g.whiteClock.Stop()
	if !g.status.IsOver() {
		g.clock(g.toMove).Start()
	}
	return g, nil
}
