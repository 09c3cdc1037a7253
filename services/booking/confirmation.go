package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/bricker/vivial-sub000/database/repository"
	bookingRepo "github.com/bricker/vivial-sub000/database/repository/booking"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"go.uber.org/zap"
)

// DefaultBookingConfirmation implements BookingConfirmer.
type DefaultBookingConfirmation struct {
	Repo      repository.BookingRepository
	Sessions  CheckoutSessionStore
	Verifier  SessionVerifier
	Reminders ReminderScheduler
	Logger    *zap.Logger
}

// Confirm transitions an initiated booking to confirmed, attaches the
// reserver details, schedules the pre-outing reminder and drops the cached
// checkout session. Only Initiated bookings can be confirmed.
func (bc *DefaultBookingConfirmation) Confirm(ctx context.Context, auth utils.AuthContext, bookingID, reserverDetailsID string) (*models.Booking, error) {
	if err := bc.Verifier.Verify(ctx, auth); err != nil {
		return nil, err
	}

	booking, err := bc.Repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewDomainError("bookingNotFound", "booking not found")
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.AccountID != auth.AccountID {
		return nil, utils.NewDomainError("bookingNotFound", "booking not found")
	}
	if booking.State != models.BookingStateInitiated {
		return nil, utils.NewDomainError("bookingNotConfirmable",
			fmt.Sprintf("booking in state %q cannot be confirmed", booking.State))
	}

	booking.State = models.BookingStateConfirmed
	booking.ReserverDetailsID = reserverDetailsID
	if err := bc.Repo.Update(booking); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	// The reminder is best effort; a scheduling failure must not unwind a
	// booking that already committed.
	if err := bc.Reminders.Schedule(ctx, booking); err != nil {
		bc.Logger.Warn("failed to schedule reminder",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	if err := bc.Sessions.Delete(ctx, booking.ID); err != nil {
		bc.Logger.Warn("failed to clear checkout session",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	bc.Logger.Info("confirmed booking", zap.String("bookingId", booking.ID))
	return booking, nil
}
