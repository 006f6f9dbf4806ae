package model

import "errors"

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrNotOwner           = errors.New("player does not own this game")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrIllegalMove        = errors.New("illegal move")
	ErrInvalidSquare      = errors.New("square is off the board")
	ErrGameOver           = errors.New("game is over")
	ErrPromotionPending   = errors.New("a promotion choice is pending")
	ErrNoPromotionPending = errors.New("no promotion is pending")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrInvalidDifficulty  = errors.New("difficulty out of range")
	ErrStaleMove          = errors.New("position changed while the computer was thinking")
	ErrInvalidSnapshot    = errors.New("invalid saved game")
)
