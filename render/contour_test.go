package render

import (
	"image"
	"testing"

	"github.com/celldet/go-cpn"
)

func TestToImagePointRoundsToNearest(t *testing.T) {

	tests := []struct {
		in   cpn.Point
		want image.Point
	}{
		{cpn.Point{X: 2.4, Y: 2.6}, image.Pt(2, 3)},
		{cpn.Point{X: 2.5, Y: 0}, image.Pt(3, 0)},
		{cpn.Point{X: -0.6, Y: -1.4}, image.Pt(-1, -1)},
		{cpn.Point{X: -0.4, Y: -2.6}, image.Pt(0, -3)},
	}

	for _, tc := range tests {
		if got := toImagePoint(tc.in); got != tc.want {
			t.Errorf("toImagePoint(%+v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
