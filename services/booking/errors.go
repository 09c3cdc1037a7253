package booking

import "errors"

// Sentinel errors for checkout session handling.
var (
	// ErrSessionExpired is returned when the cached checkout session is gone.
	ErrSessionExpired = errors.New("checkout session not found or expired")
	// ErrSubmitInFlight is returned when a submit lock is already held.
	ErrSubmitInFlight = errors.New("a submission for this booking is already in progress")
)

// User-facing messages for failed checkout steps.
const (
	msgGenericFailure = "Something went wrong. Please try again later."
	msgPaymentFailure = "There was an error submitting your payment."
	msgBookingFailure = "There was an error during booking."
)
