package apperror

import "errors"

var (
	ErrOutOfRange    = errors.New("cell is out of range")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrGameFinished  = errors.New("game is already finished")
	ErrInvalidPlayer = errors.New("invalid player")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrGameNotFound  = errors.New("game not found")
)
