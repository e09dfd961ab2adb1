package pricing

import (
	"github.com/shopspring/decimal"

	"wastewise-pickup-demo/internal/geo"
	"wastewise-pickup-demo/internal/model"
)

// Pickup pricing in rupiah: flat base fee plus per-kilometer and
// per-kilogram rates.
var (
	baseFee   = decimal.NewFromInt(5000)
	perKmRate = decimal.NewFromInt(2000)
	perKgRate = decimal.NewFromInt(1000)
)

// Quote is a priced pickup estimate. DistanceKm is zero when the user's
// position is unknown; the distance term then contributes nothing to the
// total and should be omitted from display.
type Quote struct {
	Total      decimal.Decimal `json:"total"`
	DistanceKm float64         `json:"distance_km"`
}

// Estimate prices a pickup. It returns nil when no location is selected or
// the weight is not positive: "not yet estimable" is distinct from zero cost.
func Estimate(weight float64, loc *model.Location, userPos *geo.Point) *Quote {
	if loc == nil || weight <= 0 {
		return nil
	}

	distance := 0.0
	if userPos != nil {
		distance = geo.Distance(*userPos, geo.Point{Lat: loc.Lat, Lng: loc.Lng})
	}

	total := baseFee.
		Add(perKmRate.Mul(decimal.NewFromFloat(distance))).
		Add(perKgRate.Mul(decimal.NewFromFloat(weight))).
		Round(0)

	return &Quote{Total: total, DistanceKm: distance}
}
