package models

import "time"

// CostBreakdown carries money amounts in integer cents. The server computes
// TotalCostCents as base + fee + tax; consumers treat it as authoritative and
// never re-derive it.
type CostBreakdown struct {
	BaseCostCents  int64 `bson:"base_cost_cents" json:"baseCostCents"`
	FeeCents       int64 `bson:"fee_cents" json:"feeCents"`
	TaxCents       int64 `bson:"tax_cents" json:"taxCents"`
	TotalCostCents int64 `bson:"total_cost_cents" json:"totalCostCents"`
}

// Reservation is the restaurant half of an itinerary.
type Reservation struct {
	RestaurantName string        `bson:"restaurant_name" json:"restaurantName"`
	Arrival        time.Time     `bson:"arrival" json:"arrival"`
	Headcount      int           `bson:"headcount" json:"headcount"`
	CostBreakdown  CostBreakdown `bson:"cost_breakdown" json:"costBreakdown"`
}

// ActivityPlan is the event half of an itinerary.
type ActivityPlan struct {
	ActivityName  string        `bson:"activity_name" json:"activityName"`
	StartTime     time.Time     `bson:"start_time" json:"startTime"`
	Headcount     int           `bson:"headcount" json:"headcount"`
	CostBreakdown CostBreakdown `bson:"cost_breakdown" json:"costBreakdown"`
}

// Itinerary aggregates an optional restaurant reservation and/or activity
// plan with a unified cost breakdown.
type Itinerary struct {
	ID            string        `bson:"id" json:"id"`
	Reservation   *Reservation  `bson:"reservation,omitempty" json:"reservation,omitempty"`
	ActivityPlan  *ActivityPlan `bson:"activity_plan,omitempty" json:"activityPlan,omitempty"`
	CostBreakdown CostBreakdown `bson:"cost_breakdown" json:"costBreakdown"`
}

// StartTime returns the earliest scheduled time of the itinerary's parts.
func (it Itinerary) StartTime() time.Time {
	var start time.Time
	if it.Reservation != nil {
		start = it.Reservation.Arrival
	}
	if it.ActivityPlan != nil {
		if start.IsZero() || it.ActivityPlan.StartTime.Before(start) {
			start = it.ActivityPlan.StartTime
		}
	}
	return start
}

// IsPaid reports whether checking out this itinerary requires a payment.
func (it Itinerary) IsPaid() bool {
	return it.CostBreakdown.TotalCostCents > 0
}
