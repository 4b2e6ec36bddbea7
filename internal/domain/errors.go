package domain

import "errors"

var (
	// ErrSlotTaken is wrapped by booking repositories when a uniqueness
	// constraint on (date, time, therapist) rejects a confirmed booking
	ErrSlotTaken = errors.New("domain: slot is already taken")

	// ErrBookingNotFound is wrapped by booking repositories for a missing id
	ErrBookingNotFound = errors.New("domain: booking not found")

	// ErrBookingNotCancellable is wrapped when the booking is already cancelled
	ErrBookingNotCancellable = errors.New("domain: booking cannot be cancelled")
)
