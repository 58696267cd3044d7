package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrOutOfBounds = errors.New("location coordinates out of bounds")
	ErrIllegalMove = errors.New("illegal move")

	ErrGameFinished = fmt.Errorf("%w: game is already finished", ErrIllegalMove)
	ErrCellOccupied = fmt.Errorf("%w: space is not free", ErrIllegalMove)
)
