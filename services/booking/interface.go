package booking

import (
	"context"

	"github.com/bricker/vivial-sub000/database/repository"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"go.uber.org/zap"
)

// CheckoutService drives one checkout: initiation primes the booking,
// payment intent and customer session; Submit runs the sequential
// reserver-details, payment and confirmation steps.
type CheckoutService interface {
	Initiate(ctx context.Context, auth utils.AuthContext, outingID string) (*models.CheckoutSession, *models.Booking, error)
	Submit(ctx context.Context, req CheckoutRequest) *CheckoutResult
	GetBooking(ctx context.Context, auth utils.AuthContext, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, auth utils.AuthContext) ([]models.Booking, error)
	CancelBooking(ctx context.Context, auth utils.AuthContext, bookingID string) (*models.Booking, error)
}

// ReserverDetailsService persists the contact details a reservation is held
// under. Create is used while the details have no ID yet, Update afterwards.
type ReserverDetailsService interface {
	Create(ctx context.Context, auth utils.AuthContext, input models.ReserverDetailsInput) (*models.ReserverDetails, error)
	Update(ctx context.Context, auth utils.AuthContext, input models.ReserverDetailsInput) (*models.ReserverDetails, error)
	GetForAccount(ctx context.Context, auth utils.AuthContext) (*models.ReserverDetails, error)
}

// ConfirmParams carries the options for confirming a payment intent.
type ConfirmParams struct {
	ReturnURL         string
	ReceiptEmail      string
	SavePaymentMethod bool
}

// PaymentProcessor abstracts the payment provider. Client secrets returned
// here are opaque and handed to the caller unmodified.
type PaymentProcessor interface {
	EnsureCustomer(ctx context.Context, account *models.Account) (string, error)
	CreateIntent(ctx context.Context, booking *models.Booking, customerID string) (intentID, clientSecret string, err error)
	RetrieveIntentSecret(ctx context.Context, intentID string) (clientSecret string, err error)
	CreateCustomerSession(ctx context.Context, customerID string) (clientSecret string, err error)
	Confirm(ctx context.Context, intentID string, params ConfirmParams) error
}

// BookingConfirmer finalizes a booking after reserver details are persisted
// and payment (if any) has been confirmed.
type BookingConfirmer interface {
	Confirm(ctx context.Context, auth utils.AuthContext, bookingID, reserverDetailsID string) (*models.Booking, error)
}

// SessionVerifier re-checks that the caller's auth session is still live and
// tears it down when it is not. Implemented by the account service.
type SessionVerifier interface {
	Verify(ctx context.Context, auth utils.AuthContext) error
	Revoke(ctx context.Context, auth utils.AuthContext) error
}

// ReminderScheduler enqueues the pre-outing reminder after confirmation.
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking *models.Booking) error
}

// DefaultCheckoutService implements CheckoutService.
type DefaultCheckoutService struct {
	Reserver  ReserverDetailsService
	Payments  PaymentProcessor
	Confirmer BookingConfirmer
	Sessions  CheckoutSessionStore
	Verifier  SessionVerifier
	Bookings  repository.BookingRepository
	Outings   repository.OutingRepository
	Accounts  repository.AccountRepository
	Logger    *zap.Logger
}
