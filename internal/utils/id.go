package utils

import "github.com/google/uuid"

// NewID returns a fresh identifier for any stored entity.
func NewID() string {
	return uuid.NewString()
}

// NewHoldToken returns an opaque token tied to a seat hold. It proves
// ownership of the hold when confirming payment.
func NewHoldToken() string {
	return uuid.NewString()
}
