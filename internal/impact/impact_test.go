package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		weight     float64
		wantPoints int
		wantCO2    float64
	}{
		{name: "plastic", category: "plastik", weight: 3, wantPoints: 30, wantCO2: 7.5},
		{name: "electronic", category: "elektronik", weight: 2, wantPoints: 20, wantCO2: 10},
		{name: "organic uses default factor", category: "organik", weight: 5, wantPoints: 50, wantCO2: 5},
		{name: "unknown category uses default factor", category: "styrofoam", weight: 4, wantPoints: 40, wantCO2: 4},
		{name: "fractional weight rounds co2 to one decimal", category: "plastik", weight: 1.5, wantPoints: 15, wantCO2: 3.8},
		{name: "fractional points round to nearest", category: "plastik", weight: 1.25, wantPoints: 13, wantCO2: 3.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.category, tt.weight)

			assert.Equal(t, tt.wantPoints, got.Points)
			assert.Equal(t, tt.wantCO2, got.CO2Saved)
		})
	}
}
