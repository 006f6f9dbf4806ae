package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Color      string `json:"color"`
	Difficulty int    `json:"difficulty"`
}

type promotionRequest struct {
	Piece string `json:"piece"`
}

type difficultyRequest struct {
	Difficulty int `json:"difficulty"`
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

// parseBody decodes an optional JSON body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// parseColor reads a side name, white when empty.
func parseColor(s string) (chess.Color, error) {
	if s == "" {
		return chess.White, nil
	}
	color, err := chess.ParseColor(s)
	if err != nil {
		return chess.White, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return color, nil
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	color, err := parseColor(req.Color)
	if err != nil {
		return respondError(c, err)
	}

	state, err := gc.gameService.CreateGame(playerID(c), color, req.Difficulty)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (gc *GameController) ImportGame(c *fiber.Ctx) error {
	var saved model.SavedGame
	if err := c.BodyParser(&saved); err != nil {
		return respondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
	}

	state, err := gc.gameService.ImportGame(playerID(c), saved)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	pos := chess.Position{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), pos)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  pos,
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
	}
	state, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ChoosePromotion(c *fiber.Ctx) error {
	var req promotionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
	}
	kind, err := chess.ParsePieceType(req.Piece)
	if err != nil {
		return respondError(c, fmt.Errorf("%v: %w", err, model.ErrInvalidPromotion))
	}
	state, err := gc.gameService.ChoosePromotion(c.Params("gameId"), playerID(c), kind)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	state, err := gc.gameService.Undo(c.Params("gameId"), playerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	state, err := gc.gameService.Resign(c.Params("gameId"), playerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) NewGame(c *fiber.Ctx) error {
	var req createGameRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	color, err := parseColor(req.Color)
	if err != nil {
		return respondError(c, err)
	}
	state, err := gc.gameService.NewGame(c.Params("gameId"), playerID(c), color)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) SetDifficulty(c *fiber.Ctx) error {
	var req difficultyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
	}
	state, err := gc.gameService.SetDifficulty(c.Params("gameId"), playerID(c), req.Difficulty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ExportGame(c *fiber.Ctx) error {
	saved, err := gc.gameService.ExportGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", c.Params("gameId")+".json"))
	return c.JSON(saved)
}
