package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestMeasurePolarity(t *testing.T) {
	tests := []struct {
		name        string
		img         image.Image
		darkOnLight bool
	}{
		{"black text on white", newFormulaImage(40, 40), true},
		{"all white", newFilledImage(20, 20, color.RGBA{255, 255, 255, 255}), true},
		{"all black", newFilledImage(20, 20, color.RGBA{0, 0, 0, 255}), false},
		{"light gray background", newFilledImage(20, 20, color.RGBA{220, 220, 220, 255}), true},
		{"dark gray background", newFilledImage(20, 20, color.RGBA{40, 40, 40, 255}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := MeasurePolarity(tt.img)
			if stats.DarkOnLight != tt.darkOnLight {
				t.Errorf("DarkOnLight = %v (mean %.2f), want %v",
					stats.DarkOnLight, stats.MeanLightness, tt.darkOnLight)
			}
			if stats.MeanLightness < 0 || stats.MeanLightness > 1 {
				t.Errorf("MeanLightness = %f outside [0,1]", stats.MeanLightness)
			}
		})
	}
}

func TestMeasurePolarity_Degenerate(t *testing.T) {
	for _, tt := range []struct {
		name string
		img  image.Image
	}{
		{"nil", nil},
		{"zero-area", image.NewRGBA(image.Rect(0, 0, 0, 0))},
		{"fully transparent", image.NewRGBA(image.Rect(0, 0, 4, 4))},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if !MeasurePolarity(tt.img).DarkOnLight {
				t.Error("degenerate image must default to dark-on-light")
			}
		})
	}
}

func TestEnsureDarkOnLight(t *testing.T) {
	t.Run("dark-on-light passes through untouched", func(t *testing.T) {
		img := newFormulaImage(30, 30)
		if got := EnsureDarkOnLight(img); got != image.Image(img) {
			t.Error("expected the identical image back")
		}
	})

	t.Run("light-on-dark gets inverted", func(t *testing.T) {
		// White glyph block on black background.
		img := newFilledImage(30, 30, color.RGBA{0, 0, 0, 255})
		for y := 10; y < 20; y++ {
			for x := 10; x < 20; x++ {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
		}

		got := EnsureDarkOnLight(img)
		if got == image.Image(img) {
			t.Fatal("expected an inverted copy, got the input")
		}

		// Background must now be light, glyph dark.
		r, _, _, _ := got.At(0, 0).RGBA()
		if uint8(r>>8) < 200 {
			t.Errorf("background after inversion = %d, want light", uint8(r>>8))
		}
		r, _, _, _ = got.At(15, 15).RGBA()
		if uint8(r>>8) > 50 {
			t.Errorf("glyph after inversion = %d, want dark", uint8(r>>8))
		}

		if !MeasurePolarity(got).DarkOnLight {
			t.Error("inverted image still reads as light-on-dark")
		}
	})
}
