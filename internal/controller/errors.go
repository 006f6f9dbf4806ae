package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/service"
)

var errBadRequest = errors.New("malformed request")

var errorStatus = []struct {
	err    error
	status int
}{
	{model.ErrGameNotFound, fiber.StatusNotFound},
	{model.ErrNotOwner, fiber.StatusForbidden},
	{model.ErrNotYourTurn, fiber.StatusConflict},
	{model.ErrGameOver, fiber.StatusConflict},
	{model.ErrPromotionPending, fiber.StatusConflict},
	{model.ErrNoPromotionPending, fiber.StatusConflict},
	{model.ErrNothingToUndo, fiber.StatusConflict},
	{model.ErrStaleMove, fiber.StatusConflict},
	{service.ErrGameExists, fiber.StatusConflict},
	{model.ErrIllegalMove, fiber.StatusUnprocessableEntity},
	{model.ErrInvalidSquare, fiber.StatusUnprocessableEntity},
	{model.ErrInvalidPromotion, fiber.StatusUnprocessableEntity},
	{model.ErrInvalidDifficulty, fiber.StatusUnprocessableEntity},
	{model.ErrInvalidSnapshot, fiber.StatusUnprocessableEntity},
	{errBadRequest, fiber.StatusBadRequest},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
