package booking

import (
	"context"
	"fmt"

	"github.com/bricker/vivial-sub000/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/customersession"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripePaymentProcessor implements PaymentProcessor on the Stripe API.
type StripePaymentProcessor struct {
	Logger *zap.Logger
}

// NewStripePaymentProcessor creates a PaymentProcessor backed by Stripe.
// The API key is set globally at startup.
func NewStripePaymentProcessor(logger *zap.Logger) *StripePaymentProcessor {
	return &StripePaymentProcessor{Logger: logger}
}

// EnsureCustomer returns the booking account's Stripe customer ID, creating
// the customer on first use.
func (p *StripePaymentProcessor) EnsureCustomer(ctx context.Context, account *models.Account) (string, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(account.Email),
	}
	params.AddMetadata("accountId", account.ID)

	cust, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}
	return cust.ID, nil
}

// CreateIntent creates a payment intent for the booking's total cost.
func (p *StripePaymentProcessor) CreateIntent(ctx context.Context, booking *models.Booking, customerID string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(booking.Itinerary.CostBreakdown.TotalCostCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("bookingId", booking.ID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	p.Logger.Info("created payment intent",
		zap.String("bookingId", booking.ID),
		zap.Int64("amountCents", booking.Itinerary.CostBreakdown.TotalCostCents))
	return intent.ID, intent.ClientSecret, nil
}

// RetrieveIntentSecret fetches the client secret of an existing payment
// intent so a re-initiated checkout can mount the payment element again.
func (p *StripePaymentProcessor) RetrieveIntentSecret(ctx context.Context, intentID string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}
	intent, err := paymentintent.Get(intentID, params)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve payment intent %s: %w", intentID, err)
	}
	return intent.ClientSecret, nil
}

// CreateCustomerSession creates a short-lived customer session whose client
// secret the payment element consumes as-is.
func (p *StripePaymentProcessor) CreateCustomerSession(ctx context.Context, customerID string) (string, error) {
	params := &stripe.CustomerSessionParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
		Components: &stripe.CustomerSessionComponentsParams{
			BuyButton: &stripe.CustomerSessionComponentsBuyButtonParams{
				Enabled: stripe.Bool(true),
			},
			PricingTable: &stripe.CustomerSessionComponentsPricingTableParams{
				Enabled: stripe.Bool(false),
			},
		},
	}

	session, err := customersession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create customer session: %w", err)
	}
	return session.ClientSecret, nil
}

// Confirm confirms the payment intent with the checkout return URL and
// receipt email. SavePaymentMethod keeps the method on file for later use.
func (p *StripePaymentProcessor) Confirm(ctx context.Context, intentID string, confirm ConfirmParams) error {
	params := &stripe.PaymentIntentConfirmParams{
		Params:       stripe.Params{Context: ctx},
		ReturnURL:    stripe.String(confirm.ReturnURL),
		ReceiptEmail: stripe.String(confirm.ReceiptEmail),
	}
	if confirm.SavePaymentMethod {
		params.SetupFutureUsage = stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession))
	}

	if _, err := paymentintent.Confirm(intentID, params); err != nil {
		return fmt.Errorf("failed to confirm payment intent %s: %w", intentID, err)
	}
	return nil
}
