package booking

import (
	"github.com/bricker/vivial-sub000/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display labels for derived cost lines. The Vivial fee line is a product
// decision baked into the breakdown, not a computed zero.
const (
	CostNameThirdPartyFees = "3rd party Service Fees & Taxes"
	CostNameVivialFees     = "Service Fees via Vivial"
	CostValueFree          = "FREE"
)

// CostItem is one display line of a cost breakdown.
type CostItem struct {
	Key       string `json:"key"`
	CostName  string `json:"costName"`
	CostValue string `json:"costValue"`
}

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCents renders integer cents as a locale-aware USD string.
// Zero and negative amounts render as $0.00.
func FormatCents(cents int64) string {
	if cents < 0 {
		cents = 0
	}
	return usdPrinter.Sprintf("$%v", number.Decimal(float64(cents)/100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatBaseCost renders the base cost of a breakdown.
func FormatBaseCost(cb models.CostBreakdown) string {
	return FormatCents(cb.BaseCostCents)
}

// FormatTotalCost renders the total cost of a breakdown.
func FormatTotalCost(cb models.CostBreakdown) string {
	return FormatCents(cb.TotalCostCents)
}

// DeriveCostItems produces the ordered display lines for an itinerary:
// the reservation and activity base costs when present, a combined
// fees-and-taxes line only when fee+tax is positive, and a trailing
// Vivial fee line that is always FREE.
func DeriveCostItems(it models.Itinerary) []CostItem {
	var items []CostItem

	if it.Reservation != nil {
		items = append(items, CostItem{
			Key:       "reservation",
			CostName:  it.Reservation.RestaurantName,
			CostValue: FormatBaseCost(it.Reservation.CostBreakdown),
		})
	}
	if it.ActivityPlan != nil {
		items = append(items, CostItem{
			Key:       "activity",
			CostName:  it.ActivityPlan.ActivityName,
			CostValue: FormatBaseCost(it.ActivityPlan.CostBreakdown),
		})
	}
	if feeAndTax := it.CostBreakdown.FeeCents + it.CostBreakdown.TaxCents; feeAndTax > 0 {
		items = append(items, CostItem{
			Key:       "fees",
			CostName:  CostNameThirdPartyFees,
			CostValue: FormatCents(feeAndTax),
		})
	}
	items = append(items, CostItem{
		Key:       "vivial",
		CostName:  CostNameVivialFees,
		CostValue: CostValueFree,
	})
	return items
}
