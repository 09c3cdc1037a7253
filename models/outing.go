package models

import "time"

// OutingSurvey captures the preferences an outing is planned from.
type OutingSurvey struct {
	StartTime       time.Time `bson:"start_time" json:"startTime"`
	Headcount       int       `bson:"headcount" json:"headcount"`
	BudgetCents     int64     `bson:"budget_cents" json:"budgetCents"`
	WantsRestaurant bool      `bson:"wants_restaurant" json:"wantsRestaurant"`
	WantsActivity   bool      `bson:"wants_activity" json:"wantsActivity"`
	Area            string    `bson:"area,omitempty" json:"area,omitempty"`
}

// Outing is a proposed, re-rollable itinerary. It becomes a Booking once
// checkout is initiated.
type Outing struct {
	ID        string       `bson:"id" json:"id"`
	AccountID string       `bson:"account_id,omitempty" json:"accountId,omitempty"` // empty for unauthenticated visitors
	VisitorID string       `bson:"visitor_id,omitempty" json:"visitorId,omitempty"`
	Survey    OutingSurvey `bson:"survey" json:"survey"`
	Itinerary Itinerary    `bson:"itinerary" json:"itinerary"`
	Rerolls   int          `bson:"rerolls" json:"rerolls"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updatedAt"`
}
