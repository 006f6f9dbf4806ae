package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/config"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/search"
)

type GameService struct {
	gameManager       *GameManager
	replyDelay        time.Duration
	searchTimeout     time.Duration
	defaultDifficulty int
	newSearcher       func() *search.Searcher
	newID             func() string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	repliesMu sync.Mutex
	replies   map[string]*reply // gameID -> computer reply in flight
}

type reply struct {
	cancel context.CancelFunc
}

type Option func(*GameService)

// WithSearcher replaces the searcher factory, e.g. with a noiseless one in tests.
func WithSearcher(newSearcher func() *search.Searcher) Option {
	return func(gs *GameService) {
		gs.newSearcher = newSearcher
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(gs *GameService) {
		gs.newID = newID
	}
}

func NewGameService(gameManager *GameManager, cfg config.Config, opts ...Option) *GameService {
	ctx, cancel := context.WithCancel(context.Background())
	maxDepth := cfg.MaxDepth
	gs := &GameService{
		gameManager:       gameManager,
		replyDelay:        cfg.ReplyDelay,
		searchTimeout:     cfg.SearchTimeout,
		defaultDifficulty: cfg.DefaultDifficulty,
		newSearcher: func() *search.Searcher {
			return search.New(search.WithMaxDepth(maxDepth))
		},
		newID:   uuid.NewString,
		ctx:     ctx,
		cancel:  cancel,
		replies: make(map[string]*reply),
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

// Close stops pending computer replies and waits for them to finish.
func (gs *GameService) Close() {
	gs.cancel()
	gs.wg.Wait()
}

// CreateGame starts a game owned by playerID. A difficulty of 0 selects the default.
func (gs *GameService) CreateGame(playerID string, color chess.Color, difficulty int) (model.GameState, error) {
	if difficulty == 0 {
		difficulty = gs.defaultDifficulty
	}
	game, err := model.NewGame(gs.newID(), playerID, color, difficulty)
	if err != nil {
		return model.GameState{}, err
	}
	if err := gs.gameManager.AddGame(game); err != nil {
		return model.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}
	log.Printf("game %s: created for player %s as %s, difficulty %d", game.ID, playerID, color, difficulty)

	gs.scheduleReply(game)
	return game.GetState(), nil
}

// ImportGame restores an exported game under a new ID owned by playerID.
func (gs *GameService) ImportGame(playerID string, saved model.SavedGame) (model.GameState, error) {
	game, err := model.RestoreGame(gs.newID(), playerID, saved)
	if err != nil {
		return model.GameState{}, err
	}
	if err := gs.gameManager.AddGame(game); err != nil {
		return model.GameState{}, fmt.Errorf("failed to import game: %w", err)
	}
	log.Printf("game %s: imported for player %s", game.ID, playerID)

	gs.scheduleReply(game)
	return game.GetState(), nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) HasGame(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) LegalMoves(gameID string, pos chess.Position) ([]chess.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(pos)
}

func (gs *GameService) HandleMove(gameID, playerID string, req model.MoveRequest) (model.GameState, error) {
	return gs.update(gameID, playerID, func(game *model.Game) error {
		return game.MakeMove(req)
	})
}

func (gs *GameService) ChoosePromotion(gameID, playerID string, kind chess.PieceType) (model.GameState, error) {
	return gs.update(gameID, playerID, func(game *model.Game) error {
		return game.ChoosePromotion(kind)
	})
}

func (gs *GameService) Undo(gameID, playerID string) (model.GameState, error) {
	return gs.update(gameID, playerID, func(game *model.Game) error {
		return game.Undo()
	})
}

func (gs *GameService) Resign(gameID, playerID string) (model.GameState, error) {
	return gs.update(gameID, playerID, func(game *model.Game) error {
		return game.Resign()
	})
}

func (gs *GameService) NewGame(gameID, playerID string, color chess.Color) (model.GameState, error) {
	return gs.update(gameID, playerID, func(game *model.Game) error {
		game.Reset(color)
		return nil
	})
}

func (gs *GameService) SetDifficulty(gameID, playerID string, difficulty int) (model.GameState, error) {
	return gs.update(gameID, playerID, func(game *model.Game) error {
		return game.SetDifficulty(difficulty)
	})
}

func (gs *GameService) ExportGame(gameID, playerID string) (model.SavedGame, error) {
	game, err := gs.gameManager.GetOwnedGame(gameID, playerID)
	if err != nil {
		return model.SavedGame{}, err
	}
	return game.Snapshot(), nil
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// SendError reports a failed websocket request back to its sender.
func (gs *GameService) SendError(gameID, playerID string, reqErr error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.SendError(playerID, reqErr)
}

// update runs one owner action, pushes the new state to observers and lets the computer answer.
func (gs *GameService) update(gameID, playerID string, action func(*model.Game) error) (model.GameState, error) {
	game, err := gs.gameManager.GetOwnedGame(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}
	before := game.Generation()
	if err := action(game); err != nil {
		return model.GameState{}, err
	}
	if game.Generation() != before {
		gs.cancelReply(game.ID)
	}
	game.Broadcast()
	gs.scheduleReply(game)
	return game.GetState(), nil
}

func (gs *GameService) cancelReply(gameID string) {
	gs.repliesMu.Lock()
	defer gs.repliesMu.Unlock()

	if r, ok := gs.replies[gameID]; ok {
		r.cancel()
		delete(gs.replies, gameID)
	}
}

// scheduleReply starts the computer's search if it is the computer's turn.
func (gs *GameService) scheduleReply(game *model.Game) {
	turn, ok := game.ComputerTurn()
	if !ok {
		return
	}

	gs.repliesMu.Lock()
	if _, busy := gs.replies[game.ID]; busy {
		gs.repliesMu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(gs.ctx)
	r := &reply{cancel: cancel}
	gs.replies[game.ID] = r
	gs.repliesMu.Unlock()

	gs.wg.Add(1)
	go func() {
		defer gs.wg.Done()
		defer func() {
			gs.repliesMu.Lock()
			if gs.replies[game.ID] == r {
				delete(gs.replies, game.ID)
			}
			gs.repliesMu.Unlock()
			cancel()
		}()

		err := gs.reply(ctx, game, turn)
		switch {
		case err == nil:
		case errors.Is(err, model.ErrStaleMove), errors.Is(err, context.Canceled):
			log.Printf("game %s: computer reply dropped: %v", game.ID, err)
		default:
			log.Printf("game %s: computer reply failed: %v", game.ID, err)
		}
	}()
}

func (gs *GameService) reply(ctx context.Context, game *model.Game, turn model.Turn) error {
	if gs.replyDelay > 0 {
		timer := time.NewTimer(gs.replyDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	searchCtx, cancel := context.WithTimeout(ctx, gs.searchTimeout)
	defer cancel()
	start := time.Now()
	res, err := gs.newSearcher().Search(searchCtx, turn.Board, turn.Side, turn.State, turn.Difficulty)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		log.Printf("game %s: search timed out after %s, retrying at depth 1", game.ID, gs.searchTimeout)
		res, err = search.New(search.WithMaxDepth(1)).Search(ctx, turn.Board, turn.Side, turn.State, turn.Difficulty)
	}
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if !res.Found {
		return nil
	}

	if err := game.ApplyComputerMove(res.Move, turn.Generation); err != nil {
		return err
	}
	log.Printf("game %s: computer played %s (depth %d, score %d, %d nodes, %s)",
		game.ID, res.Move, res.Depth, res.Score, res.Nodes, time.Since(start).Round(time.Millisecond))

	game.Broadcast()
	return nil
}
