package impact

import "math"

const pointsPerKg = 10

// CO2 saved per kilogram by waste category. Categories without an entry use
// factor 1.
var co2Factors = map[string]float64{
	"plastik":    2.5,
	"elektronik": 5,
}

type Result struct {
	Points   int     `json:"points"`
	CO2Saved float64 `json:"co2_saved"`
}

// Calculate converts a drop-off into loyalty points and an estimated CO2
// saving in kilograms. Points are rounded to the nearest whole point, CO2 to
// one decimal place. Pure; crediting the points is the caller's job.
func Calculate(category string, weight float64) Result {
	factor, ok := co2Factors[category]
	if !ok {
		factor = 1
	}

	return Result{
		Points:   int(math.Round(weight * pointsPerKg)),
		CO2Saved: math.Round(weight*factor*10) / 10,
	}
}
