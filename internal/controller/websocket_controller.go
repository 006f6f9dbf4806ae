package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/service"
	"github.com/benbeisheim/chessai-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := utils.CopyString(c.Params("gameId"))
	playerID, _ := c.Locals("playerID").(string)

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("game %s: rejected websocket for player %s: %v", gameID, playerID, err)
		payload, _ := json.Marshal(ws.ErrorPayload{Error: err.Error()})
		c.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload})
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("game %s: read error: %v", gameID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, playerID, fmt.Errorf("%w: %v", errBadRequest, err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.gameService.SendError(gameID, playerID, err)
		}
	}
}

// handleMessage dispatches one client request. Successful requests answer through the game's
// state broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, req)
		return err

	case ws.MessageTypePromotion:
		var p ws.PromotionPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		kind, err := chess.ParsePieceType(p.Piece)
		if err != nil {
			return fmt.Errorf("%v: %w", err, model.ErrInvalidPromotion)
		}
		_, err = wsc.gameService.ChoosePromotion(gameID, playerID, kind)
		return err

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID, playerID)
		return err

	case ws.MessageTypeResign:
		_, err := wsc.gameService.Resign(gameID, playerID)
		return err

	case ws.MessageTypeNewGame:
		var p ws.NewGamePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				return fmt.Errorf("%w: %v", errBadRequest, err)
			}
		}
		color, err := parseColor(p.Color)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.NewGame(gameID, playerID, color)
		return err

	case ws.MessageTypeDifficulty:
		var p ws.DifficultyPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		_, err := wsc.gameService.SetDifficulty(gameID, playerID, p.Difficulty)
		return err

	default:
		return fmt.Errorf("%w: unknown message type %q", errBadRequest, msg.Type)
	}
}
