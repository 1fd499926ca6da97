package reservation

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotUnavailable is the race-losing outcome: the slot was LOCKED or
	// BOOKED by the time this transaction observed it.
	ErrSlotUnavailable = errors.New("slot is already booked or locked")

	// ErrBookingPaid rejects cancellation of a PAID booking.
	ErrBookingPaid = errors.New("cannot cancel a paid booking")

	// ErrBookingNotPending rejects payment or cancellation of a booking that
	// already left the PENDING state.
	ErrBookingNotPending = errors.New("booking is not pending")
)
