package preprocess

import (
	"image/color"
	"math"
	"testing"

	"github.com/celldet/go-cpn"
	"gocv.io/x/gocv"
)

var black = color.RGBA{R: 0, G: 0, B: 0, A: 255}

func TestLetterBoxResize(t *testing.T) {

	tests := []struct {
		srcWidth      int
		srcHeight     int
		resizeWidth   int
		resizeHeight  int
		expectedXPad  int
		expectedYPad  int
		expectedScale float64
	}{
		{1280, 720, 640, 640, 0, 140, 0.50},
		{800, 1000, 640, 640, 64, 0, 0.64},
		{800, 800, 640, 640, 0, 0, 0.8},
	}

	for _, tc := range tests {
		img := gocv.NewMatWithSize(tc.srcHeight, tc.srcWidth, gocv.MatTypeCV8UC1)

		resizedImg := gocv.NewMat()

		resizer := NewResizer(tc.srcWidth, tc.srcHeight, tc.resizeWidth, tc.resizeHeight)

		resizer.LetterBoxResize(img, &resizedImg, black)

		if resizer.XPad() != tc.expectedXPad || resizer.YPad() != tc.expectedYPad {
			t.Errorf("src (%d, %d): expected XPad=%d, YPad=%d, got xPad=%d, yPad=%d",
				tc.srcWidth, tc.srcHeight, tc.expectedXPad, tc.expectedYPad,
				resizer.XPad(), resizer.YPad())
		}

		if resizer.ScaleFactor() != tc.expectedScale {
			t.Errorf("src (%d, %d): expected scale %f, got %f",
				tc.srcWidth, tc.srcHeight, tc.expectedScale, resizer.ScaleFactor())
		}

		img.Close()
		resizedImg.Close()
		resizer.Close()
	}
}

func TestContourToSrc(t *testing.T) {

	// 1280x720 letterboxed into 640x640: scale 0.5, yPad 140
	resizer := NewResizer(1280, 720, 640, 640)
	defer resizer.Close()

	in := cpn.Contour{{X: 320, Y: 320}, {X: 0, Y: 140}}
	got := resizer.ContourToSrc(in)

	want := cpn.Contour{{X: 640, Y: 360}, {X: 0, Y: 0}}

	for i := range want {
		if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("point %d mapped to %+v, want %+v", i, got[i], want[i])
		}
	}
}
