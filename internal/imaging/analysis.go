package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// PolarityStats describes the tonal orientation of a formula bitmap.
//
// A typical formula capture is mostly background, so the mean lightness of
// the whole image tracks the background tone: high means dark ink on a light
// background, low means a light-on-dark capture (a dark-mode screenshot).
type PolarityStats struct {
	// MeanLightness is the average perceptual lightness over all opaque
	// pixels, from 0 (black) to 1 (white).
	MeanLightness float64 `json:"mean_lightness"`

	// DarkOnLight is true when the image reads as dark ink on a light
	// background, the orientation the binarization step expects.
	DarkOnLight bool `json:"dark_on_light"`
}

// MeasurePolarity samples every pixel and reports the image's tonal
// orientation. Fully transparent pixels are ignored. A nil or empty image is
// reported as dark-on-light so that callers leave it untouched.
func MeasurePolarity(img image.Image) PolarityStats {
	if img == nil {
		return PolarityStats{MeanLightness: 1, DarkOnLight: true}
	}

	bounds := img.Bounds()
	var sum float64
	var count int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent pixel carries no color information.
				continue
			}
			_, _, l := c.Hsl()
			sum += l
			count++
		}
	}
	if count == 0 {
		return PolarityStats{MeanLightness: 1, DarkOnLight: true}
	}

	mean := sum / float64(count)
	return PolarityStats{
		MeanLightness: mean,
		DarkOnLight:   mean >= 0.5,
	}
}

// EnsureDarkOnLight returns img unchanged when it already reads as dark ink
// on a light background, and a color-inverted copy otherwise. Run it before
// Normalize when the capture source may be in dark mode.
func EnsureDarkOnLight(img image.Image) image.Image {
	if img == nil || MeasurePolarity(img).DarkOnLight {
		return img
	}
	return imaging.Invert(img)
}
