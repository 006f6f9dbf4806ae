package arena

import (
	"context"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/search"
)

type Outcome int

const (
	Draw Outcome = iota
	WhiteWins
	BlackWins
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	}
	return "1/2-1/2"
}

// Player is one side of an arena game.
type Player struct {
	Searcher *search.Searcher
	Strength int
}

// GameResult is the record of one finished game.
type GameResult struct {
	Number   int
	AIsWhite bool
	Outcome  Outcome
	Plies    int
	Reason   string
	Moves    []string
}

type position struct {
	board  chess.Board
	state  chess.State
	toMove chess.Color
}

func startPosition() position {
	return position{board: chess.NewBoard(), state: chess.NewState(), toMove: chess.White}
}

// playGame plays from pos until mate, stalemate or maxPlies moves have been made. The position is
// a value, so games running side by side never share a board.
func playGame(ctx context.Context, pos position, white, black Player, maxPlies int) (GameResult, error) {
	var res GameResult
	for {
		status := chess.Status(&pos.board, pos.toMove, pos.state)
		if status.IsOver() {
			res.Reason = string(status.Status)
			if status.Winner != nil {
				res.Outcome = WhiteWins
				if *status.Winner == chess.Black {
					res.Outcome = BlackWins
				}
			}
			return res, nil
		}
		if res.Plies >= maxPlies {
			res.Reason = "ply limit"
			return res, nil
		}

		p := white
		if pos.toMove == chess.Black {
			p = black
		}
		found, err := p.Searcher.Search(ctx, pos.board, pos.toMove, pos.state, p.Strength)
		if err != nil {
			return res, err
		}
		if !found.Found {
			panic("arena: search found no move in a live position")
		}

		moved := pos.board.At(found.Move.FromRow, found.Move.FromCol)
		board, state, captured := chess.Apply(pos.board, pos.state, found.Move)
		next := chess.Status(&board, pos.toMove.Opponent(), state)
		res.Moves = append(res.Moves, chess.FormatMove(moved.Type, found.Move, captured != nil, next.Status))

		pos = position{board: board, state: state, toMove: pos.toMove.Opponent()}
		res.Plies++
	}
}
