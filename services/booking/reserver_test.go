package booking

import (
	"context"
	"errors"
	"testing"

	bookingRepo "github.com/bricker/vivial-sub000/database/repository/booking"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"go.uber.org/zap"
)

type fakeReserverRepo struct {
	byID      map[string]*models.ReserverDetails
	byAccount map[string]*models.ReserverDetails
	created   int
	updated   int
}

func newFakeReserverRepo() *fakeReserverRepo {
	return &fakeReserverRepo{
		byID:      map[string]*models.ReserverDetails{},
		byAccount: map[string]*models.ReserverDetails{},
	}
}

func (f *fakeReserverRepo) GetByID(id string) (*models.ReserverDetails, error) {
	if d, ok := f.byID[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeReserverRepo) GetByAccount(accountID string) (*models.ReserverDetails, error) {
	if d, ok := f.byAccount[accountID]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeReserverRepo) Create(details *models.ReserverDetails) error {
	f.created++
	f.byID[details.ID] = details
	f.byAccount[details.AccountID] = details
	return nil
}

func (f *fakeReserverRepo) Update(details *models.ReserverDetails) error {
	f.updated++
	f.byID[details.ID] = details
	f.byAccount[details.AccountID] = details
	return nil
}

func TestPlausiblePhoneNumber(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+12025550143", true},
		{"202-555-0143", true},
		{"(202) 555.0143", true},
		{"5550143", true},
		{"", false},
		{"12345", false},
		{"12345678901234567", false},
		{"call me maybe", false},
		{"+1202555x143", false},
	}
	for _, tc := range cases {
		if got := plausiblePhoneNumber(tc.phone); got != tc.want {
			t.Errorf("plausiblePhoneNumber(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestValidateReserverInputCollectsAllInvalidFields(t *testing.T) {
	err := validateReserverInput(models.ReserverDetailsInput{PhoneNumber: "bad"})

	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("got %v, want validation error", err)
	}
	want := []string{"firstName", "lastName", "phoneNumber"}
	if len(validationErr.Fields) != len(want) {
		t.Fatalf("fields = %v, want %v", validationErr.Fields, want)
	}
	for i, field := range want {
		if validationErr.Fields[i] != field {
			t.Errorf("field %d = %q, want %q", i, validationErr.Fields[i], field)
		}
	}
}

func TestReserverCreateTrimsAndStores(t *testing.T) {
	repo := newFakeReserverRepo()
	svc := &DefaultReserverDetailsService{Repo: repo, Verifier: &fakeVerifier{}, Logger: zap.NewNop()}

	details, err := svc.Create(context.Background(), testAuth(), models.ReserverDetailsInput{
		FirstName: " Ada ", LastName: " Lovelace ", PhoneNumber: " +12025550143 ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if details.ID == "" {
		t.Error("created details have no ID")
	}
	if details.FirstName != "Ada" || details.LastName != "Lovelace" || details.PhoneNumber != "+12025550143" {
		t.Errorf("details not trimmed: %+v", details)
	}
	if details.AccountID != "acct-1" {
		t.Errorf("account ID = %q", details.AccountID)
	}
	if repo.created != 1 {
		t.Errorf("created %d records, want 1", repo.created)
	}
}

func TestReserverUpdateRejectsForeignDetails(t *testing.T) {
	repo := newFakeReserverRepo()
	repo.byID["rd-1"] = &models.ReserverDetails{ID: "rd-1", AccountID: "someone-else"}
	svc := &DefaultReserverDetailsService{Repo: repo, Verifier: &fakeVerifier{}, Logger: zap.NewNop()}

	_, err := svc.Update(context.Background(), testAuth(), models.ReserverDetailsInput{
		ID: "rd-1", FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+12025550143",
	})

	var domainErr *utils.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "reserverDetailsNotFound" {
		t.Fatalf("got %v, want reserverDetailsNotFound", err)
	}
	if repo.updated != 0 {
		t.Error("foreign details were updated")
	}
}

func TestReserverGetForAccountReturnsEmptyDetailsWhenNoneStored(t *testing.T) {
	svc := &DefaultReserverDetailsService{Repo: newFakeReserverRepo(), Verifier: &fakeVerifier{}, Logger: zap.NewNop()}

	details, err := svc.GetForAccount(context.Background(), testAuth())
	if err != nil {
		t.Fatalf("GetForAccount: %v", err)
	}
	if details == nil {
		t.Fatal("got nil details")
	}
	if details.ID != "" || details.FirstName != "" {
		t.Errorf("details not empty: %+v", details)
	}
	if details.AccountID != "acct-1" {
		t.Errorf("account ID = %q", details.AccountID)
	}
}

func TestReserverOpsSurfaceRevokedSession(t *testing.T) {
	verifier := &fakeVerifier{verifyErr: utils.NewUnauthenticatedError("session revoked")}
	svc := &DefaultReserverDetailsService{Repo: newFakeReserverRepo(), Verifier: verifier, Logger: zap.NewNop()}

	_, err := svc.Create(context.Background(), testAuth(), models.ReserverDetailsInput{
		FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+12025550143",
	})

	var unauthErr *utils.UnauthenticatedError
	if !errors.As(err, &unauthErr) {
		t.Fatalf("got %v, want unauthenticated error", err)
	}
}
