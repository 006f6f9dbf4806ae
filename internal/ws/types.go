package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// Client to server.
	MessageTypeMove       MessageType = "move"
	MessageTypePromotion  MessageType = "promotion"
	MessageTypeUndo       MessageType = "undo"
	MessageTypeResign     MessageType = "resign"
	MessageTypeNewGame    MessageType = "newGame"
	MessageTypeDifficulty MessageType = "difficulty"

	// Server to client.
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type PromotionPayload struct {
	Piece string `json:"piece"`
}

type NewGamePayload struct {
	Color string `json:"color"`
}

type DifficultyPayload struct {
	Difficulty int `json:"difficulty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
