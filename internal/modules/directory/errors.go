package directory

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrStallNotFound = errors.New("stall not found")
	ErrSlotNotFound  = errors.New("slot not found")
	ErrValidation    = errors.New("validation error")
)
