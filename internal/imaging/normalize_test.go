package imaging

import (
	"image"
	"image/color"
	"testing"
)

// newFilledImage creates an in-memory RGBA image filled with a single color.
func newFilledImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// newFormulaImage creates a white image with a centered black rectangle,
// approximating a dense glyph on paper.
func newFormulaImage(width, height int) *image.RGBA {
	img := newFilledImage(width, height, color.RGBA{255, 255, 255, 255})
	x0, x1 := width/4, 3*width/4
	y0, y1 := height/4, 3*height/4
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	return img
}

func TestNormalize_PreservesDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"square", 64, 64},
		{"wide", 200, 50},
		{"tall", 50, 200},
		{"odd sizes", 9, 13},
		{"single pixel", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newFormulaImage(tt.width, tt.height)

			out := Normalize(img)
			if out == nil {
				t.Fatal("Normalize returned nil")
			}

			b := out.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestNormalize_OutputIsBinary(t *testing.T) {
	out := Normalize(newFormulaImage(80, 60))

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := out.At(x, y).RGBA()
			v := uint8(r >> 8)
			if uint8(g>>8) != v || uint8(bl>>8) != v {
				t.Fatalf("pixel (%d,%d) is not single-channel", x, y)
			}
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}
}

func TestNormalize_FindsEdges(t *testing.T) {
	// The adaptive threshold marks intensity transitions; the edge of the
	// black rectangle must survive as black pixels in the output.
	out := Normalize(newFormulaImage(80, 80))

	black, white := 0, 0
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := out.At(x, y).RGBA()
			if uint8(r>>8) == 0 {
				black++
			} else {
				white++
			}
		}
	}
	if black == 0 {
		t.Error("expected some black pixels at the rectangle boundary, got none")
	}
	if white == 0 {
		t.Error("expected white background pixels, got none")
	}
}

func TestNormalize_UniformImage(t *testing.T) {
	// A featureless image has no intensity transitions; everything should
	// threshold to background white.
	out := Normalize(newFilledImage(40, 40, color.RGBA{128, 128, 128, 255}))

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := out.At(x, y).RGBA()
			if uint8(r>>8) != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 255", x, y, uint8(r>>8))
			}
		}
	}
}

func TestNormalize_DegradesToIdentity(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil image", nil},
		{"zero-area image", image.NewRGBA(image.Rect(0, 0, 0, 0))},
		{"zero-width image", image.NewRGBA(image.Rect(0, 0, 0, 10))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(tt.img)
			if out != tt.img {
				t.Errorf("Normalize(%v) did not return the input unchanged", tt.name)
			}
		})
	}
}

func TestNormalize_GrayscaleInput(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 30, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			v := uint8(255)
			if x > 10 && x < 20 && y > 10 && y < 20 {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	out := Normalize(img)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 30 {
		t.Errorf("dimensions changed for grayscale input: %v", out.Bounds())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d,%d,%d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
