package models

// VenueKindRestaurant and VenueKindActivity partition the venue catalog.
const (
	VenueKindRestaurant = "restaurant"
	VenueKindActivity   = "activity"
)

// Venue is a bookable restaurant or activity in the catalog. Per-person
// costs are integer cents.
type Venue struct {
	ID             string  `bson:"id" json:"id"`
	Kind           string  `bson:"kind" json:"kind"`
	Name           string  `bson:"name" json:"name"`
	Area           string  `bson:"area" json:"area"`
	PerPersonCents int64   `bson:"per_person_cents" json:"perPersonCents"`
	FeeRate        float64 `bson:"fee_rate" json:"feeRate"`
	TaxRate        float64 `bson:"tax_rate" json:"taxRate"`
	MaxHeadcount   int     `bson:"max_headcount" json:"maxHeadcount"`
}
