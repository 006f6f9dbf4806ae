// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessai-backend/internal/model"
)

var ErrGameExists = errors.New("game already exists")

type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) AddGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return fmt.Errorf("%s: %w", game.ID, ErrGameExists)
	}
	gm.games[game.ID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", gameID, model.ErrGameNotFound)
	}
	return game, nil
}

// GetOwnedGame returns the game only if playerID holds its human seat.
func (gm *GameManager) GetOwnedGame(gameID, playerID string) (*model.Game, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !game.IsOwner(playerID) {
		return nil, fmt.Errorf("game %s: %w", gameID, model.ErrNotOwner)
	}
	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.games, gameID)
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return len(gm.games)
}
