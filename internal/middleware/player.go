package middleware

import (
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// PlayerIDHeader carries the client's player ID. Browsers cannot set headers on websocket
// requests, so the playerId query parameter is accepted as well.
const PlayerIDHeader = "X-Player-ID"

const maxPlayerIDLength = 128

// EnsurePlayerID stores the caller's player ID in Locals("playerID") or stops the request.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("playerID").(string); ok {
			return c.Next()
		}

		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		switch {
		case playerID == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		case len(playerID) > maxPlayerIDLength:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player ID is too long",
			})
		case strings.IndexFunc(playerID, notIDRune) >= 0:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player ID contains invalid characters",
			})
		}

		// The header and query values alias fasthttp's request buffer; the ID outlives the request.
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}

func notIDRune(r rune) bool {
	return unicode.IsSpace(r) || !unicode.IsPrint(r)
}
