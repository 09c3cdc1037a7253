package outing

import (
	"context"
	"errors"
	"testing"
	"time"

	outingRepo "github.com/bricker/vivial-sub000/database/repository/outing"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"go.uber.org/zap"
)

type fakeOutingRepo struct {
	outings map[string]*models.Outing
	updates int
}

func newFakeOutingRepo() *fakeOutingRepo {
	return &fakeOutingRepo{outings: map[string]*models.Outing{}}
}

func (f *fakeOutingRepo) GetByID(id string) (*models.Outing, error) {
	if o, ok := f.outings[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, outingRepo.ErrNotFound
}

func (f *fakeOutingRepo) Create(outing *models.Outing) error {
	f.outings[outing.ID] = outing
	return nil
}

func (f *fakeOutingRepo) Update(outing *models.Outing) error {
	f.updates++
	f.outings[outing.ID] = outing
	return nil
}

type fakeVenueRepo struct {
	restaurants []models.Venue
	activities  []models.Venue
}

func (f *fakeVenueRepo) FindCandidates(kind, area string, headcount int) ([]models.Venue, error) {
	if kind == models.VenueKindRestaurant {
		return f.restaurants, nil
	}
	return f.activities, nil
}

type fakeLimiter struct {
	allowed bool
	calls   int
}

func (f *fakeLimiter) Allow(ctx context.Context, visitorID string) (bool, error) {
	f.calls++
	return f.allowed, nil
}

func testVenue(kind, name string, perPerson int64) models.Venue {
	return models.Venue{
		ID: "v-" + name, Kind: kind, Name: name,
		PerPersonCents: perPerson, FeeRate: 0.05, TaxRate: 0.08, MaxHeadcount: 10,
	}
}

func newTestService(venues *fakeVenueRepo, limiter *fakeLimiter) (*DefaultOutingService, *fakeOutingRepo) {
	repo := newFakeOutingRepo()
	return &DefaultOutingService{
		Outings: repo,
		Venues:  venues,
		Limiter: limiter,
		Logger:  zap.NewNop(),
	}, repo
}

func validSurvey() models.OutingSurvey {
	return models.OutingSurvey{
		StartTime:       time.Now().Add(72 * time.Hour),
		Headcount:       2,
		WantsRestaurant: true,
		WantsActivity:   true,
	}
}

func TestPlanBuildsItineraryWithDerivedCosts(t *testing.T) {
	venues := &fakeVenueRepo{
		restaurants: []models.Venue{testVenue(models.VenueKindRestaurant, "Chez Test", 4000)},
		activities:  []models.Venue{testVenue(models.VenueKindActivity, "Jazz Night", 2000)},
	}
	svc, _ := newTestService(venues, &fakeLimiter{allowed: true})

	out, err := svc.Plan(context.Background(), "acct-1", "", validSurvey())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if out.Itinerary.Reservation == nil || out.Itinerary.ActivityPlan == nil {
		t.Fatal("itinerary missing a requested part")
	}

	// 2 people at 4000 per person: base 8000, fee 400, tax 640.
	res := out.Itinerary.Reservation.CostBreakdown
	if res.BaseCostCents != 8000 || res.FeeCents != 400 || res.TaxCents != 640 {
		t.Errorf("reservation breakdown = %+v", res)
	}
	if res.TotalCostCents != 9040 {
		t.Errorf("reservation total = %d, want 9040", res.TotalCostCents)
	}

	total := out.Itinerary.CostBreakdown
	if total.BaseCostCents != 12000 {
		t.Errorf("combined base = %d, want 12000", total.BaseCostCents)
	}
	if total.TotalCostCents != res.TotalCostCents+out.Itinerary.ActivityPlan.CostBreakdown.TotalCostCents {
		t.Errorf("combined total %d does not add up", total.TotalCostCents)
	}
}

func TestPlanRejectsEmptySurvey(t *testing.T) {
	svc, _ := newTestService(&fakeVenueRepo{}, &fakeLimiter{allowed: true})

	_, err := svc.Plan(context.Background(), "acct-1", "", models.OutingSurvey{
		StartTime: time.Now().Add(time.Hour),
		Headcount: 2,
	})

	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestPlanRejectsOverBudgetItinerary(t *testing.T) {
	venues := &fakeVenueRepo{
		restaurants: []models.Venue{testVenue(models.VenueKindRestaurant, "Chez Cher", 50000)},
	}
	svc, _ := newTestService(venues, &fakeLimiter{allowed: true})

	survey := validSurvey()
	survey.WantsActivity = false
	survey.BudgetCents = 10000

	_, err := svc.Plan(context.Background(), "acct-1", "", survey)

	var domainErr *utils.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "overBudget" {
		t.Fatalf("got %v, want overBudget", err)
	}
}

func TestRerollPrefersDifferentVenues(t *testing.T) {
	venues := &fakeVenueRepo{
		restaurants: []models.Venue{
			testVenue(models.VenueKindRestaurant, "Chez Test", 4000),
			testVenue(models.VenueKindRestaurant, "Trattoria Due", 3500),
		},
	}
	svc, repo := newTestService(venues, &fakeLimiter{allowed: true})

	survey := validSurvey()
	survey.WantsActivity = false
	planned, err := svc.Plan(context.Background(), "acct-1", "", survey)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	first := planned.Itinerary.Reservation.RestaurantName

	rerolled, err := svc.Reroll(context.Background(), "acct-1", "", planned.ID)
	if err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if rerolled.Itinerary.Reservation.RestaurantName == first {
		t.Errorf("reroll picked the same restaurant %q with an alternative available", first)
	}
	if rerolled.Rerolls != 1 {
		t.Errorf("rerolls = %d, want 1", rerolled.Rerolls)
	}
	if repo.updates != 1 {
		t.Errorf("repo updates = %d, want 1", repo.updates)
	}
}

func TestRerollReusesOnlyVenueWhenNoAlternative(t *testing.T) {
	venues := &fakeVenueRepo{
		restaurants: []models.Venue{testVenue(models.VenueKindRestaurant, "Chez Test", 4000)},
	}
	svc, _ := newTestService(venues, &fakeLimiter{allowed: true})

	survey := validSurvey()
	survey.WantsActivity = false
	planned, err := svc.Plan(context.Background(), "acct-1", "", survey)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	rerolled, err := svc.Reroll(context.Background(), "acct-1", "", planned.ID)
	if err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if rerolled.Itinerary.Reservation.RestaurantName != "Chez Test" {
		t.Errorf("restaurant = %q", rerolled.Itinerary.Reservation.RestaurantName)
	}
}

func TestRerollCapsAnonymousVisitors(t *testing.T) {
	venues := &fakeVenueRepo{
		restaurants: []models.Venue{testVenue(models.VenueKindRestaurant, "Chez Test", 4000)},
	}
	limiter := &fakeLimiter{allowed: false}
	svc, _ := newTestService(venues, limiter)

	survey := validSurvey()
	survey.WantsActivity = false
	planned, err := svc.Plan(context.Background(), "", "visitor-1", survey)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	_, err = svc.Reroll(context.Background(), "", "visitor-1", planned.ID)

	var domainErr *utils.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "rerollLimitReached" {
		t.Fatalf("got %v, want rerollLimitReached", err)
	}
	if limiter.calls != 1 {
		t.Errorf("limiter consulted %d times, want 1", limiter.calls)
	}
}

func TestRerollSkipsLimiterForAccounts(t *testing.T) {
	venues := &fakeVenueRepo{
		restaurants: []models.Venue{testVenue(models.VenueKindRestaurant, "Chez Test", 4000)},
	}
	limiter := &fakeLimiter{allowed: false}
	svc, _ := newTestService(venues, limiter)

	survey := validSurvey()
	survey.WantsActivity = false
	planned, err := svc.Plan(context.Background(), "acct-1", "", survey)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if _, err := svc.Reroll(context.Background(), "acct-1", "", planned.ID); err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if limiter.calls != 0 {
		t.Errorf("limiter consulted %d times for an authenticated reroll", limiter.calls)
	}
}

func TestRerollRejectsForeignOuting(t *testing.T) {
	venues := &fakeVenueRepo{
		restaurants: []models.Venue{testVenue(models.VenueKindRestaurant, "Chez Test", 4000)},
	}
	svc, _ := newTestService(venues, &fakeLimiter{allowed: true})

	survey := validSurvey()
	survey.WantsActivity = false
	planned, err := svc.Plan(context.Background(), "acct-1", "", survey)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	_, err = svc.Reroll(context.Background(), "acct-2", "", planned.ID)

	var domainErr *utils.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "outingNotFound" {
		t.Fatalf("got %v, want outingNotFound", err)
	}
}
