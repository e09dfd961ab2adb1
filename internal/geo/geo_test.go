package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceSamePoint(t *testing.T) {
	p := Point{Lat: -6.2000, Lng: 106.8166}

	assert.Zero(t, Distance(p, p))
}

func TestDistanceKnownPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{
			name: "jakarta to bandung",
			a:    Point{Lat: -6.2000, Lng: 106.8166},
			b:    Point{Lat: -6.8915, Lng: 107.6107},
			want: 116.652,
		},
		{
			name: "jakarta to surabaya",
			a:    Point{Lat: -6.2000, Lng: 106.8166},
			b:    Point{Lat: -7.2575, Lng: 112.7521},
			want: 665.902,
		},
		{
			name: "one degree of latitude at the equator",
			a:    Point{Lat: 0, Lng: 0},
			b:    Point{Lat: 1, Lng: 0},
			want: 111.195,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), 0.01)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: 3.5952, Lng: 98.6722}
	b := Point{Lat: -8.6705, Lng: 115.2126}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}
