package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// GameLookup reports whether a game exists.
type GameLookup func(gameID string) bool

// WebSocketUpgrade lets a request through to the websocket handler only if it asks for an upgrade,
// names a known game and carries a player ID. Failing the checks before the upgrade lets the
// client see a plain HTTP status.
func WebSocketUpgrade(gameExists GameLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if _, ok := c.Locals("playerID").(string); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		switch gameID := c.Params("gameId"); {
		case gameID == "":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		case gameExists != nil && !gameExists(gameID):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}

		return c.Next()
	}
}
