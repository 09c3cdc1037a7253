package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"go.uber.org/zap"
)

type fakeScheduler struct {
	calls int
	err   error
}

func (f *fakeScheduler) Schedule(ctx context.Context, booking *models.Booking) error {
	f.calls++
	return f.err
}

func TestConfirmTransitionsInitiatedBooking(t *testing.T) {
	repo := newMemBookingRepo()
	repo.bookings["bk-1"] = &models.Booking{
		ID: "bk-1", AccountID: "acct-1", State: models.BookingStateInitiated,
	}
	sessions := &fakeSessionStore{}
	scheduler := &fakeScheduler{}
	bc := &DefaultBookingConfirmation{
		Repo: repo, Sessions: sessions, Verifier: &fakeVerifier{},
		Reminders: scheduler, Logger: zap.NewNop(),
	}

	confirmed, err := bc.Confirm(context.Background(), testAuth(), "bk-1", "rd-1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.State != models.BookingStateConfirmed {
		t.Errorf("state = %q", confirmed.State)
	}
	if confirmed.ReserverDetailsID != "rd-1" {
		t.Errorf("reserver details ID = %q", confirmed.ReserverDetailsID)
	}
	if scheduler.calls != 1 {
		t.Errorf("reminder scheduled %d times, want 1", scheduler.calls)
	}
	if sessions.deleteCalls != 1 {
		t.Errorf("session deleted %d times, want 1", sessions.deleteCalls)
	}
}

func TestConfirmRejectsNonInitiatedBooking(t *testing.T) {
	repo := newMemBookingRepo()
	repo.bookings["bk-1"] = &models.Booking{
		ID: "bk-1", AccountID: "acct-1", State: models.BookingStateConfirmed,
	}
	bc := &DefaultBookingConfirmation{
		Repo: repo, Sessions: &fakeSessionStore{}, Verifier: &fakeVerifier{},
		Reminders: &fakeScheduler{}, Logger: zap.NewNop(),
	}

	_, err := bc.Confirm(context.Background(), testAuth(), "bk-1", "rd-1")

	var domainErr *utils.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "bookingNotConfirmable" {
		t.Fatalf("got %v, want bookingNotConfirmable", err)
	}
}

func TestConfirmSucceedsWhenReminderSchedulingFails(t *testing.T) {
	repo := newMemBookingRepo()
	repo.bookings["bk-1"] = &models.Booking{
		ID: "bk-1", AccountID: "acct-1", State: models.BookingStateInitiated,
	}
	bc := &DefaultBookingConfirmation{
		Repo: repo, Sessions: &fakeSessionStore{}, Verifier: &fakeVerifier{},
		Reminders: &fakeScheduler{err: errors.New("queue down")}, Logger: zap.NewNop(),
	}

	confirmed, err := bc.Confirm(context.Background(), testAuth(), "bk-1", "rd-1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.State != models.BookingStateConfirmed {
		t.Errorf("state = %q", confirmed.State)
	}
}
