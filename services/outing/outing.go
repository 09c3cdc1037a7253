package outing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	outingRepo "github.com/bricker/vivial-sub000/database/repository/outing"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Plan assembles a proposed outing from the venue catalog. Either an
// account ID (authenticated) or a visitor ID (anonymous) identifies the
// owner; rerolls for anonymous visitors are capped.
func (s *DefaultOutingService) Plan(ctx context.Context, accountID, visitorID string, survey models.OutingSurvey) (*models.Outing, error) {
	if err := validateSurvey(survey); err != nil {
		return nil, err
	}

	itinerary, err := s.buildItinerary(survey, nil)
	if err != nil {
		return nil, err
	}

	out := &models.Outing{
		ID:        uuid.New().String(),
		AccountID: accountID,
		VisitorID: visitorID,
		Survey:    survey,
		Itinerary: *itinerary,
	}
	if err := s.Outings.Create(out); err != nil {
		return nil, fmt.Errorf("failed to store outing: %w", err)
	}

	s.Logger.Info("planned outing", zap.String("outingId", out.ID),
		zap.Int64("totalCents", out.Itinerary.CostBreakdown.TotalCostCents))
	return out, nil
}

// Reroll re-randomizes an outing's itinerary, avoiding the current venues
// when alternatives exist. Anonymous visitors are limited to a fixed number
// of rerolls per window.
func (s *DefaultOutingService) Reroll(ctx context.Context, accountID, visitorID, outingID string) (*models.Outing, error) {
	out, err := s.Outings.GetByID(outingID)
	if err != nil {
		if errors.Is(err, outingRepo.ErrNotFound) {
			return nil, utils.NewDomainError("outingNotFound", "outing not found")
		}
		return nil, fmt.Errorf("failed to fetch outing: %w", err)
	}

	owned := (accountID != "" && out.AccountID == accountID) ||
		(accountID == "" && out.VisitorID != "" && out.VisitorID == visitorID)
	if !owned {
		return nil, utils.NewDomainError("outingNotFound", "outing not found")
	}

	if accountID == "" {
		allowed, err := s.Limiter.Allow(ctx, visitorID)
		if err != nil {
			return nil, fmt.Errorf("failed to check reroll limit: %w", err)
		}
		if !allowed {
			return nil, utils.NewDomainError("rerollLimitReached",
				"reroll limit reached, sign in to keep exploring")
		}
	}

	exclude := map[string]bool{}
	if out.Itinerary.Reservation != nil {
		exclude[out.Itinerary.Reservation.RestaurantName] = true
	}
	if out.Itinerary.ActivityPlan != nil {
		exclude[out.Itinerary.ActivityPlan.ActivityName] = true
	}

	itinerary, err := s.buildItinerary(out.Survey, exclude)
	if err != nil {
		return nil, err
	}

	out.Itinerary = *itinerary
	out.Rerolls++
	if err := s.Outings.Update(out); err != nil {
		return nil, fmt.Errorf("failed to store rerolled outing: %w", err)
	}
	return out, nil
}

// GetByID returns an outing by ID.
func (s *DefaultOutingService) GetByID(ctx context.Context, outingID string) (*models.Outing, error) {
	out, err := s.Outings.GetByID(outingID)
	if err != nil {
		if errors.Is(err, outingRepo.ErrNotFound) {
			return nil, utils.NewDomainError("outingNotFound", "outing not found")
		}
		return nil, fmt.Errorf("failed to fetch outing: %w", err)
	}
	return out, nil
}

func validateSurvey(survey models.OutingSurvey) error {
	var invalid []string
	if survey.Headcount <= 0 {
		invalid = append(invalid, "headcount")
	}
	if survey.StartTime.Before(time.Now()) {
		invalid = append(invalid, "startTime")
	}
	if !survey.WantsRestaurant && !survey.WantsActivity {
		invalid = append(invalid, "wantsRestaurant", "wantsActivity")
	}
	if len(invalid) > 0 {
		return utils.NewValidationError(invalid...)
	}
	return nil
}

// buildItinerary picks venues per the survey and derives the cost
// breakdown. Excluded names are skipped when alternatives remain so a
// reroll actually changes the proposal.
func (s *DefaultOutingService) buildItinerary(survey models.OutingSurvey, exclude map[string]bool) (*models.Itinerary, error) {
	itinerary := &models.Itinerary{ID: uuid.New().String()}

	if survey.WantsRestaurant {
		venue, err := s.pickVenue(models.VenueKindRestaurant, survey, exclude)
		if err != nil {
			return nil, err
		}
		itinerary.Reservation = &models.Reservation{
			RestaurantName: venue.Name,
			Arrival:        survey.StartTime,
			Headcount:      survey.Headcount,
			CostBreakdown:  venueCost(venue, survey.Headcount),
		}
	}
	if survey.WantsActivity {
		venue, err := s.pickVenue(models.VenueKindActivity, survey, exclude)
		if err != nil {
			return nil, err
		}
		start := survey.StartTime
		if itinerary.Reservation != nil {
			// Dinner first, activity after.
			start = start.Add(2 * time.Hour)
		}
		itinerary.ActivityPlan = &models.ActivityPlan{
			ActivityName:  venue.Name,
			StartTime:     start,
			Headcount:     survey.Headcount,
			CostBreakdown: venueCost(venue, survey.Headcount),
		}
	}

	var total models.CostBreakdown
	if itinerary.Reservation != nil {
		total = addBreakdowns(total, itinerary.Reservation.CostBreakdown)
	}
	if itinerary.ActivityPlan != nil {
		total = addBreakdowns(total, itinerary.ActivityPlan.CostBreakdown)
	}
	itinerary.CostBreakdown = total

	if survey.BudgetCents > 0 && total.TotalCostCents > survey.BudgetCents {
		return nil, utils.NewDomainError("overBudget",
			"no itinerary found within the requested budget")
	}
	return itinerary, nil
}

func (s *DefaultOutingService) pickVenue(kind string, survey models.OutingSurvey, exclude map[string]bool) (models.Venue, error) {
	candidates, err := s.Venues.FindCandidates(kind, survey.Area, survey.Headcount)
	if err != nil {
		return models.Venue{}, fmt.Errorf("failed to query venues: %w", err)
	}
	if len(candidates) == 0 {
		return models.Venue{}, utils.NewDomainError("noVenues",
			fmt.Sprintf("no %s available for this outing", kind))
	}

	fresh := candidates[:0:0]
	for _, v := range candidates {
		if !exclude[v.Name] {
			fresh = append(fresh, v)
		}
	}
	if len(fresh) == 0 {
		fresh = candidates
	}
	return fresh[rand.Intn(len(fresh))], nil
}

// venueCost derives a per-part cost breakdown from the venue's rates.
func venueCost(v models.Venue, headcount int) models.CostBreakdown {
	base := v.PerPersonCents * int64(headcount)
	fee := int64(math.Round(float64(base) * v.FeeRate))
	tax := int64(math.Round(float64(base) * v.TaxRate))
	return models.CostBreakdown{
		BaseCostCents:  base,
		FeeCents:       fee,
		TaxCents:       tax,
		TotalCostCents: base + fee + tax,
	}
}

func addBreakdowns(a, b models.CostBreakdown) models.CostBreakdown {
	return models.CostBreakdown{
		BaseCostCents:  a.BaseCostCents + b.BaseCostCents,
		FeeCents:       a.FeeCents + b.FeeCents,
		TaxCents:       a.TaxCents + b.TaxCents,
		TotalCostCents: a.TotalCostCents + b.TotalCostCents,
	}
}
