package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bricker/vivial-sub000/config"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"go.uber.org/zap"
)

// CheckoutState is the explicit state of one submit attempt. A result is in
// exactly one state; loading/error flag combinations are unrepresentable.
type CheckoutState int

const (
	StateIdle CheckoutState = iota
	StateSubmitting
	StateFailed
	StateDone
)

func (s CheckoutState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the state by name so API clients never see raw enum values.
func (s CheckoutState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// FailureKind classifies why a submit attempt stopped.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureUnauthenticated
	FailurePayment
	FailureBooking
	FailureTransport
)

// CheckoutRequest is one submit attempt for an initiated booking.
type CheckoutRequest struct {
	Auth      utils.AuthContext
	BookingID string
	Reserver  models.ReserverDetailsInput
}

// CheckoutResult reports the terminal state of a submit attempt. The two
// error channels stay separate: ErrorMessage carries step failures,
// InvalidFields carries server-side field validation. On Done, RedirectURL
// points at the post-checkout page; on FailureUnauthenticated it points at
// the logout route and no error message is set.
type CheckoutResult struct {
	State         CheckoutState           `json:"state"`
	Failure       FailureKind             `json:"-"`
	BookingID     string                  `json:"bookingId"`
	Reserver      *models.ReserverDetails `json:"reserver,omitempty"`
	ErrorMessage  string                  `json:"errorMessage,omitempty"`
	InvalidFields []string                `json:"invalidFields,omitempty"`
	RedirectURL   string                  `json:"redirectUrl,omitempty"`
	LoggedOut     bool                    `json:"loggedOut,omitempty"`
}

// Submit runs the checkout steps in fixed order: persist reserver details,
// confirm payment (skipped for zero-cost bookings), confirm the booking.
// Each step fully resolves before the next starts and any failure is
// terminal for the attempt; there is no retry. All errors are converted to
// result fields here; nothing propagates past this boundary.
func (s *DefaultCheckoutService) Submit(ctx context.Context, req CheckoutRequest) *CheckoutResult {
	result := &CheckoutResult{State: StateSubmitting, BookingID: req.BookingID}

	acquired, err := s.Sessions.AcquireSubmitLock(ctx, req.BookingID)
	if err != nil {
		s.Logger.Error("submit lock acquisition failed", zap.Error(err))
		return s.fail(result, FailureTransport, msgGenericFailure)
	}
	if !acquired {
		return s.fail(result, FailureTransport, ErrSubmitInFlight.Error())
	}
	defer func() {
		if err := s.Sessions.ReleaseSubmitLock(ctx, req.BookingID); err != nil {
			s.Logger.Warn("failed to release submit lock", zap.Error(err))
		}
	}()

	// Step 1: persist reserver details. An empty ID selects the create
	// path, a non-empty ID the update path, never both.
	var details *models.ReserverDetails
	if req.Reserver.ID == "" {
		details, err = s.Reserver.Create(ctx, req.Auth, req.Reserver)
	} else {
		details, err = s.Reserver.Update(ctx, req.Auth, req.Reserver)
	}
	if err != nil {
		return s.classify(ctx, req.Auth, result, err, msgGenericFailure)
	}
	result.Reserver = details

	booking, err := s.Bookings.GetByID(req.BookingID)
	if err != nil {
		s.Logger.Error("failed to load booking for submit", zap.Error(err))
		return s.fail(result, FailureTransport, msgGenericFailure)
	}
	// Ownership gates every later step; a foreign booking must fail before
	// its payment intent is ever touched.
	if booking.AccountID != req.Auth.AccountID {
		s.Logger.Warn("submit rejected for booking not owned by caller",
			zap.String("bookingId", booking.ID))
		return s.classify(ctx, req.Auth, result,
			utils.NewDomainError("bookingNotFound", "booking not found"), msgBookingFailure)
	}

	// Step 2: payment confirmation, skipped entirely for zero-cost bookings.
	if booking.IsPaid() {
		confirm := ConfirmParams{
			ReturnURL:         s.postCheckoutURL(booking.ID),
			ReceiptEmail:      req.Auth.Email,
			SavePaymentMethod: true,
		}
		if err := s.Payments.Confirm(ctx, booking.PaymentIntentID, confirm); err != nil {
			s.Logger.Error("payment confirmation failed",
				zap.String("bookingId", booking.ID), zap.Error(err))
			return s.fail(result, FailurePayment, msgPaymentFailure)
		}
	}

	// Step 3: confirm the booking.
	confirmed, err := s.Confirmer.Confirm(ctx, req.Auth, booking.ID, details.ID)
	if err != nil {
		return s.classify(ctx, req.Auth, result, err, msgBookingFailure)
	}

	result.State = StateDone
	result.BookingID = confirmed.ID
	result.RedirectURL = s.postCheckoutURL(confirmed.ID)
	s.Logger.Info("checkout complete", zap.String("bookingId", confirmed.ID))
	return result
}

// classify maps a step error onto the result. The branches mirror the
// result taxonomy every operation shares: validation, unauthenticated,
// domain failure, and transport; unknown errors land in the transport
// branch rather than being silently ignored.
func (s *DefaultCheckoutService) classify(ctx context.Context, auth utils.AuthContext, result *CheckoutResult, err error, domainMsg string) *CheckoutResult {
	var validationErr *utils.ValidationError
	var unauthErr *utils.UnauthenticatedError
	var domainErr *utils.DomainError

	switch {
	case errors.As(err, &validationErr):
		result.State = StateFailed
		result.Failure = FailureValidation
		result.InvalidFields = validationErr.Fields
		result.ErrorMessage = fmt.Sprintf("The following fields are invalid: %s",
			strings.Join(validationErr.Fields, ", "))
		return result

	case errors.As(err, &unauthErr):
		// Tear the session down exactly once and send the caller to the
		// logout route. No error message accompanies this path.
		if revokeErr := s.Verifier.Revoke(ctx, auth); revokeErr != nil {
			s.Logger.Warn("failed to revoke session", zap.Error(revokeErr))
		}
		result.State = StateFailed
		result.Failure = FailureUnauthenticated
		result.LoggedOut = true
		result.RedirectURL = "/logout"
		return result

	case errors.As(err, &domainErr):
		s.Logger.Error("checkout step failed", zap.String("code", domainErr.Code), zap.Error(err))
		return s.fail(result, FailureBooking, domainMsg)

	default:
		s.Logger.Error("checkout step failed", zap.Error(err))
		return s.fail(result, FailureTransport, msgGenericFailure)
	}
}

func (s *DefaultCheckoutService) fail(result *CheckoutResult, kind FailureKind, msg string) *CheckoutResult {
	result.State = StateFailed
	result.Failure = kind
	result.ErrorMessage = msg
	return result
}

func (s *DefaultCheckoutService) postCheckoutURL(bookingID string) string {
	return fmt.Sprintf("%s/checkout/%s/complete",
		strings.TrimRight(config.AppConfig.CheckoutBaseURL, "/"), bookingID)
}
