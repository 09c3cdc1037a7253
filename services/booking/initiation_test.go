package booking

import (
	"context"
	"errors"
	"testing"

	bookingRepo "github.com/bricker/vivial-sub000/database/repository/booking"
	outingRepo "github.com/bricker/vivial-sub000/database/repository/outing"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"go.uber.org/zap"
)

type memBookingRepo struct {
	bookings map[string]*models.Booking
	creates  int
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*models.Booking{}}
}

func (f *memBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *memBookingRepo) GetByOutingID(outingID string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.OutingID == outingID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *memBookingRepo) ListByAccount(accountID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.AccountID == accountID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *memBookingRepo) Create(booking *models.Booking) error {
	f.creates++
	f.bookings[booking.ID] = booking
	return nil
}

func (f *memBookingRepo) Update(booking *models.Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

type memOutingRepo struct {
	outings map[string]*models.Outing
}

func (f *memOutingRepo) GetByID(id string) (*models.Outing, error) {
	if o, ok := f.outings[id]; ok {
		return o, nil
	}
	return nil, outingRepo.ErrNotFound
}

func (f *memOutingRepo) Create(outing *models.Outing) error { return nil }
func (f *memOutingRepo) Update(outing *models.Outing) error { return nil }

type memAccountRepo struct{}

func (f *memAccountRepo) GetByID(id string) (*models.Account, error) {
	return &models.Account{ID: id, Email: "test@example.com"}, nil
}
func (f *memAccountRepo) GetByEmail(email string) (*models.Account, error) {
	return nil, errors.New("not found")
}
func (f *memAccountRepo) Create(account *models.Account) error { return nil }
func (f *memAccountRepo) Update(account *models.Account) error { return nil }
func (f *memAccountRepo) UpdateDeviceTokenHash(accountID, deviceID, tokenHash string) error {
	return nil
}

func paidOuting() *models.Outing {
	return &models.Outing{
		ID:        "out-1",
		AccountID: "acct-1",
		Itinerary: models.Itinerary{
			ID:            "it-1",
			CostBreakdown: models.CostBreakdown{BaseCostCents: 8000, TotalCostCents: 8800},
		},
	}
}

func newInitiateService(bookings *memBookingRepo, outings *memOutingRepo) *DefaultCheckoutService {
	return newInitiateServiceWithPayments(bookings, outings, &fakePayments{})
}

func newInitiateServiceWithPayments(bookings *memBookingRepo, outings *memOutingRepo, payments *fakePayments) *DefaultCheckoutService {
	return &DefaultCheckoutService{
		Reserver:  &fakeReserverService{},
		Payments:  payments,
		Confirmer: &fakeConfirmer{},
		Sessions:  &fakeSessionStore{},
		Verifier:  &fakeVerifier{},
		Bookings:  bookings,
		Outings:   outings,
		Accounts:  &memAccountRepo{},
		Logger:    zap.NewNop(),
	}
}

func TestInitiateCreatesBookingAndPrimesPayment(t *testing.T) {
	bookings := newMemBookingRepo()
	outings := &memOutingRepo{outings: map[string]*models.Outing{"out-1": paidOuting()}}
	svc := newInitiateService(bookings, outings)

	session, bkg, err := svc.Initiate(context.Background(), testAuth(), "out-1")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if bkg.State != models.BookingStateInitiated {
		t.Errorf("state = %q", bkg.State)
	}
	if bkg.PaymentIntentID != "pi_test" || bkg.StripeCustomerID != "cus_test" {
		t.Errorf("payment not primed: %+v", bkg)
	}
	if session.PaymentIntentClientSecret != "pi_test_secret" {
		t.Errorf("intent secret = %q", session.PaymentIntentClientSecret)
	}
	if session.CustomerSessionClientSecret != "cuss_test_secret" {
		t.Errorf("customer session secret = %q", session.CustomerSessionClientSecret)
	}
	if bookings.creates != 1 {
		t.Errorf("creates = %d, want 1", bookings.creates)
	}
}

func TestInitiateReusesExistingBookingAndIntent(t *testing.T) {
	bookings := newMemBookingRepo()
	outings := &memOutingRepo{outings: map[string]*models.Outing{"out-1": paidOuting()}}
	payments := &fakePayments{}
	svc := newInitiateServiceWithPayments(bookings, outings, payments)

	firstSession, first, err := svc.Initiate(context.Background(), testAuth(), "out-1")
	if err != nil {
		t.Fatalf("first Initiate: %v", err)
	}
	secondSession, second, err := svc.Initiate(context.Background(), testAuth(), "out-1")
	if err != nil {
		t.Fatalf("second Initiate: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("second initiation created booking %q, want %q", second.ID, first.ID)
	}
	if second.PaymentIntentID != first.PaymentIntentID {
		t.Errorf("second initiation replaced the payment intent")
	}
	if bookings.creates != 1 {
		t.Errorf("creates = %d, want 1", bookings.creates)
	}

	// A resumed checkout must still be able to mount the payment element.
	if secondSession.PaymentIntentClientSecret == "" {
		t.Error("second session has no payment intent secret")
	}
	if secondSession.PaymentIntentClientSecret != firstSession.PaymentIntentClientSecret {
		t.Errorf("second secret = %q, want %q",
			secondSession.PaymentIntentClientSecret, firstSession.PaymentIntentClientSecret)
	}
	if payments.retrieveCalls != 1 {
		t.Errorf("intent retrieved %d times, want 1", payments.retrieveCalls)
	}
}

func TestInitiatePersistsCustomerBeforeIntentCreation(t *testing.T) {
	bookings := newMemBookingRepo()
	outings := &memOutingRepo{outings: map[string]*models.Outing{"out-1": paidOuting()}}
	payments := &fakePayments{intentErr: errors.New("stripe unavailable")}
	svc := newInitiateServiceWithPayments(bookings, outings, payments)

	if _, _, err := svc.Initiate(context.Background(), testAuth(), "out-1"); err == nil {
		t.Fatal("first Initiate succeeded despite intent failure")
	}

	payments.intentErr = nil
	_, bkg, err := svc.Initiate(context.Background(), testAuth(), "out-1")
	if err != nil {
		t.Fatalf("second Initiate: %v", err)
	}
	if payments.ensureCalls != 1 {
		t.Errorf("customer created %d times, want 1", payments.ensureCalls)
	}
	if bkg.StripeCustomerID != "cus_test" || bkg.PaymentIntentID != "pi_test" {
		t.Errorf("booking not fully primed after retry: %+v", bkg)
	}
}

func TestInitiateSkipsPaymentForFreeOuting(t *testing.T) {
	free := paidOuting()
	free.Itinerary.CostBreakdown = models.CostBreakdown{}
	bookings := newMemBookingRepo()
	outings := &memOutingRepo{outings: map[string]*models.Outing{"out-1": free}}
	svc := newInitiateService(bookings, outings)

	session, bkg, err := svc.Initiate(context.Background(), testAuth(), "out-1")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if bkg.PaymentIntentID != "" || bkg.StripeCustomerID != "" {
		t.Errorf("payment primed for free outing: %+v", bkg)
	}
	if session.PaymentIntentClientSecret != "" || session.CustomerSessionClientSecret != "" {
		t.Errorf("session carries payment secrets for free outing: %+v", session)
	}
}

func TestInitiateRejectsForeignOuting(t *testing.T) {
	outing := paidOuting()
	outing.AccountID = "someone-else"
	bookings := newMemBookingRepo()
	bookings.bookings["bk-1"] = &models.Booking{
		ID: "bk-1", OutingID: "out-1", AccountID: "someone-else",
		State: models.BookingStateInitiated,
	}
	outings := &memOutingRepo{outings: map[string]*models.Outing{"out-1": outing}}
	svc := newInitiateService(bookings, outings)

	_, _, err := svc.Initiate(context.Background(), testAuth(), "out-1")

	var domainErr *utils.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "outingNotFound" {
		t.Fatalf("got %v, want outingNotFound", err)
	}
}

func TestCancelBookingOnlyConfirmed(t *testing.T) {
	bookings := newMemBookingRepo()
	bookings.bookings["bk-1"] = &models.Booking{
		ID: "bk-1", AccountID: "acct-1", State: models.BookingStateInitiated,
	}
	bookings.bookings["bk-2"] = &models.Booking{
		ID: "bk-2", AccountID: "acct-1", State: models.BookingStateConfirmed,
	}
	svc := newInitiateService(bookings, &memOutingRepo{})

	_, err := svc.CancelBooking(context.Background(), testAuth(), "bk-1")
	var domainErr *utils.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "bookingNotCancelable" {
		t.Fatalf("got %v, want bookingNotCancelable", err)
	}

	canceled, err := svc.CancelBooking(context.Background(), testAuth(), "bk-2")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if canceled.State != models.BookingStateCanceled {
		t.Errorf("state = %q", canceled.State)
	}
}
