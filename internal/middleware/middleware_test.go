package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessai-backend/internal/testutil"
)

func TestEnsurePlayerID(t *testing.T) {
	app := fiber.New()
	app.Get("/who", EnsurePlayerID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})

	tests := []struct {
		name     string
		target   string
		header   string
		wantCode int
		wantBody string
	}{
		{"header", "/who", "p1", fiber.StatusOK, "p1"},
		{"query", "/who?playerId=p2", "", fiber.StatusOK, "p2"},
		{"header wins", "/who?playerId=p2", "p1", fiber.StatusOK, "p1"},
		{"missing", "/who", "", fiber.StatusUnauthorized, ""},
		{"whitespace", "/who", "bad id", fiber.StatusBadRequest, ""},
		{"too long", "/who", strings.Repeat("x", maxPlayerIDLength+1), fiber.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(PlayerIDHeader, tt.header)
			}
			resp, err := app.Test(req, -1)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, resp.StatusCode, tt.wantCode)
			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				testutil.AssertNoError(t, err)
				testutil.AssertEqual(t, string(body), tt.wantBody)
			}
		})
	}
}

func TestEnsurePlayerIDKeepsStoredIDs(t *testing.T) {
	var stored []string
	app := fiber.New()
	app.Get("/who", EnsurePlayerID(), func(c *fiber.Ctx) error {
		stored = append(stored, c.Locals("playerID").(string))
		return c.SendStatus(fiber.StatusOK)
	})

	for _, id := range []string{"player-1", "xxxxxxxx", "p2"} {
		req := httptest.NewRequest(fiber.MethodGet, "/who", nil)
		req.Header.Set(PlayerIDHeader, id)
		_, err := app.Test(req, -1)
		testutil.AssertNoError(t, err)
	}
	testutil.AssertEqual(t, stored, []string{"player-1", "xxxxxxxx", "p2"})
}

func TestWebSocketUpgrade(t *testing.T) {
	app := fiber.New()
	known := func(gameID string) bool { return gameID == "g1" }
	app.Get("/ws/game/:gameId", EnsurePlayerID(), WebSocketUpgrade(known), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name    string
		target  string
		upgrade bool
		want    int
	}{
		{"plain request", "/ws/game/g1", false, fiber.StatusUpgradeRequired},
		{"unknown game", "/ws/game/g2", true, fiber.StatusNotFound},
		{"known game", "/ws/game/g1", true, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tt.target, nil)
			req.Header.Set(PlayerIDHeader, "p1")
			if tt.upgrade {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", "websocket")
			}
			resp, err := app.Test(req, -1)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, resp.StatusCode, tt.want)
		})
	}
}
