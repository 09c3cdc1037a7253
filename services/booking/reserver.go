package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	bookingRepo "github.com/bricker/vivial-sub000/database/repository/booking"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReserverDetailsService implements ReserverDetailsService.
type DefaultReserverDetailsService struct {
	Repo     bookingRepo.ReserverDetailsRepository
	Verifier SessionVerifier
	Logger   *zap.Logger
}

// validateReserverInput collects the names of all invalid fields so the
// caller can correct every one of them in a single pass.
func validateReserverInput(input models.ReserverDetailsInput) error {
	var invalid []string
	if strings.TrimSpace(input.FirstName) == "" {
		invalid = append(invalid, "firstName")
	}
	if strings.TrimSpace(input.LastName) == "" {
		invalid = append(invalid, "lastName")
	}
	if !plausiblePhoneNumber(input.PhoneNumber) {
		invalid = append(invalid, "phoneNumber")
	}
	if len(invalid) > 0 {
		return utils.NewValidationError(invalid...)
	}
	return nil
}

// plausiblePhoneNumber accepts an optional leading + followed by 7 to 15
// digits, ignoring common separators.
func plausiblePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}
	if strings.HasPrefix(phone, "+") {
		phone = phone[1:]
	}
	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// separator, ignore
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

// Create persists new reserver details for the account.
func (s *DefaultReserverDetailsService) Create(ctx context.Context, auth utils.AuthContext, input models.ReserverDetailsInput) (*models.ReserverDetails, error) {
	if err := s.Verifier.Verify(ctx, auth); err != nil {
		return nil, err
	}
	if err := validateReserverInput(input); err != nil {
		return nil, err
	}

	details := &models.ReserverDetails{
		ID:          uuid.New().String(),
		AccountID:   auth.AccountID,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
	}
	if err := s.Repo.Create(details); err != nil {
		return nil, fmt.Errorf("failed to create reserver details: %w", err)
	}

	s.Logger.Info("created reserver details",
		zap.String("accountId", auth.AccountID), zap.String("reserverDetailsId", details.ID))
	return details, nil
}

// Update overwrites previously persisted reserver details.
func (s *DefaultReserverDetailsService) Update(ctx context.Context, auth utils.AuthContext, input models.ReserverDetailsInput) (*models.ReserverDetails, error) {
	if err := s.Verifier.Verify(ctx, auth); err != nil {
		return nil, err
	}
	if err := validateReserverInput(input); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByID(input.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewDomainError("reserverDetailsNotFound", "reserver details not found")
		}
		return nil, fmt.Errorf("failed to fetch reserver details: %w", err)
	}
	if existing.AccountID != auth.AccountID {
		return nil, utils.NewDomainError("reserverDetailsNotFound", "reserver details not found")
	}

	existing.FirstName = strings.TrimSpace(input.FirstName)
	existing.LastName = strings.TrimSpace(input.LastName)
	existing.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update reserver details: %w", err)
	}
	return existing, nil
}

// GetForAccount returns the account's stored reserver details, or empty
// details when none exist yet.
func (s *DefaultReserverDetailsService) GetForAccount(ctx context.Context, auth utils.AuthContext) (*models.ReserverDetails, error) {
	if err := s.Verifier.Verify(ctx, auth); err != nil {
		return nil, err
	}
	details, err := s.Repo.GetByAccount(auth.AccountID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return &models.ReserverDetails{AccountID: auth.AccountID}, nil
		}
		return nil, fmt.Errorf("failed to fetch reserver details: %w", err)
	}
	return details, nil
}
