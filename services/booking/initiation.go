package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/bricker/vivial-sub000/database/repository/booking"
	outingRepo "github.com/bricker/vivial-sub000/database/repository/outing"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Initiate fetches or creates the Initiated booking for an outing, primes
// the payment intent and customer session for paid outings, and caches the
// resulting checkout session. Re-initiating an existing booking refreshes
// the cached session without creating a second payment intent.
func (s *DefaultCheckoutService) Initiate(ctx context.Context, auth utils.AuthContext, outingID string) (*models.CheckoutSession, *models.Booking, error) {
	if err := s.Verifier.Verify(ctx, auth); err != nil {
		return nil, nil, err
	}

	outing, err := s.Outings.GetByID(outingID)
	if err != nil {
		if errors.Is(err, outingRepo.ErrNotFound) {
			return nil, nil, utils.NewDomainError("outingNotFound", "outing not found")
		}
		return nil, nil, fmt.Errorf("failed to fetch outing: %w", err)
	}
	// Anonymous outings are claimed by whoever checks out first.
	if outing.AccountID != "" && outing.AccountID != auth.AccountID {
		return nil, nil, utils.NewDomainError("outingNotFound", "outing not found")
	}

	booking, err := s.Bookings.GetByOutingID(outingID)
	switch {
	case err == nil:
		if booking.AccountID != auth.AccountID {
			return nil, nil, utils.NewDomainError("outingNotFound", "outing not found")
		}
	case errors.Is(err, bookingRepo.ErrNotFound):
		booking = &models.Booking{
			ID:        uuid.New().String(),
			OutingID:  outingID,
			AccountID: auth.AccountID,
			State:     models.BookingStateInitiated,
			Itinerary: outing.Itinerary,
		}
		if err := s.Bookings.Create(booking); err != nil {
			return nil, nil, fmt.Errorf("failed to create booking: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	session := models.CheckoutSession{
		BookingID: booking.ID,
		AccountID: auth.AccountID,
	}

	if booking.IsPaid() {
		if err := s.primePayment(ctx, auth, booking, &session); err != nil {
			return nil, nil, err
		}
	}

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}

	s.Logger.Info("initiated checkout",
		zap.String("bookingId", booking.ID),
		zap.String("outingId", outingID),
		zap.Bool("paid", booking.IsPaid()))
	return &session, booking, nil
}

// primePayment ensures the Stripe customer, payment intent and customer
// session exist for a paid booking and records their secrets on the session.
func (s *DefaultCheckoutService) primePayment(ctx context.Context, auth utils.AuthContext, booking *models.Booking, session *models.CheckoutSession) error {
	account, err := s.Accounts.GetByID(auth.AccountID)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}

	if booking.StripeCustomerID == "" {
		customerID, err := s.Payments.EnsureCustomer(ctx, account)
		if err != nil {
			return err
		}
		booking.StripeCustomerID = customerID
		// Persist immediately so a later intent failure cannot strand the
		// customer ID and mint a duplicate on the next initiation.
		if err := s.Bookings.Update(booking); err != nil {
			return fmt.Errorf("failed to persist stripe customer: %w", err)
		}
	}

	if booking.PaymentIntentID == "" {
		intentID, clientSecret, err := s.Payments.CreateIntent(ctx, booking, booking.StripeCustomerID)
		if err != nil {
			return err
		}
		booking.PaymentIntentID = intentID
		session.PaymentIntentClientSecret = clientSecret
		if err := s.Bookings.Update(booking); err != nil {
			return fmt.Errorf("failed to persist payment intent: %w", err)
		}
	} else {
		clientSecret, err := s.Payments.RetrieveIntentSecret(ctx, booking.PaymentIntentID)
		if err != nil {
			return err
		}
		session.PaymentIntentClientSecret = clientSecret
	}

	customerSecret, err := s.Payments.CreateCustomerSession(ctx, booking.StripeCustomerID)
	if err != nil {
		return err
	}
	session.CustomerSessionClientSecret = customerSecret
	return nil
}

// GetBooking returns a booking owned by the caller.
func (s *DefaultCheckoutService) GetBooking(ctx context.Context, auth utils.AuthContext, bookingID string) (*models.Booking, error) {
	if err := s.Verifier.Verify(ctx, auth); err != nil {
		return nil, err
	}
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewDomainError("bookingNotFound", "booking not found")
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.AccountID != auth.AccountID {
		return nil, utils.NewDomainError("bookingNotFound", "booking not found")
	}
	return booking, nil
}

// ListBookings returns all bookings owned by the caller, newest first.
func (s *DefaultCheckoutService) ListBookings(ctx context.Context, auth utils.AuthContext) ([]models.Booking, error) {
	if err := s.Verifier.Verify(ctx, auth); err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.ListByAccount(auth.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking cancels a confirmed booking. Initiated bookings are not
// cancelable; they lapse with their checkout session.
func (s *DefaultCheckoutService) CancelBooking(ctx context.Context, auth utils.AuthContext, bookingID string) (*models.Booking, error) {
	booking, err := s.GetBooking(ctx, auth, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.State != models.BookingStateConfirmed {
		return nil, utils.NewDomainError("bookingNotCancelable",
			fmt.Sprintf("booking in state %q cannot be canceled", booking.State))
	}
	booking.State = models.BookingStateCanceled
	if err := s.Bookings.Update(booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	s.Logger.Info("canceled booking", zap.String("bookingId", booking.ID))
	return booking, nil
}
