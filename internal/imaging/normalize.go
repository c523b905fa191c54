package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
)

// Pipeline constants. These mirror the tuning the recognition engine was
// calibrated against; changing them changes recognition quality.
const (
	medianRadius = 1.0 // radius 1 gives the 3x3 median window
	claheTiles   = 8   // tile grid is claheTiles x claheTiles
	claheClip    = 2.0 // histogram clip limit multiplier
	threshWindow = 11  // adaptive threshold neighborhood edge length
	threshBias   = 2   // subtracted from the local mean before comparison
	inkBlack     = 0
	paperWhite   = 255
)

// Normalize prepares a formula bitmap for recognition.
//
// The pipeline is fixed and runs in order: grayscale conversion, 3x3 median
// noise filter, contrast-limited adaptive histogram equalization, and
// adaptive mean binarization. The output is a single-channel image containing
// only the values 0 and 255, with the same width and height as the input.
//
// Normalize is a total function. If any step fails (nil input, zero-area
// bounds, a panic inside a filter), the original input is returned unchanged
// rather than surfacing an error to the caller.
func Normalize(img image.Image) image.Image {
	out, err := normalize(img)
	if err != nil {
		return img
	}
	return out
}

func normalize(img image.Image) (out image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("normalize: %v", r)
		}
	}()

	if img == nil {
		return nil, errors.New("nil image")
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, errors.New("zero-area image")
	}

	gray := toGray(img)
	denoised := rgbaToGray(effect.Median(gray, medianRadius))
	enhanced := equalizeLocal(denoised)
	return binarize(enhanced), nil
}

// toGray converts any image to a 0-based single-channel grayscale bitmap
// using standard luma weighting. Inputs that are already grayscale pass
// through the same path; the weighting is an identity for them.
func toGray(img image.Image) *image.Gray {
	return rgbaToGray(effect.Grayscale(img))
}

// rgbaToGray extracts the single luminance channel from an RGBA image whose
// channels are already equal (the output shape of bild's filters).
func rgbaToGray(img *image.RGBA) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			out.SetGray(x, y, color.Gray{Y: uint8(r >> 8)})
		}
	}
	return out
}

// tileLUT maps input intensities to equalized intensities for one tile.
type tileLUT [256]uint8

// equalizeLocal applies contrast-limited adaptive histogram equalization.
//
// The image is divided into an 8x8 grid of tiles (fewer on images smaller
// than the grid). Each tile gets its own clipped histogram equalization
// mapping, and every pixel is remapped by bilinear interpolation between the
// mappings of the four nearest tile centers. The clip limit bounds how much
// any single intensity can dominate a tile's histogram, which keeps flat
// background regions from being stretched into noise.
func equalizeLocal(src *image.Gray) *image.Gray {
	width := src.Rect.Dx()
	height := src.Rect.Dy()

	tilesX := claheTiles
	if tilesX > width {
		tilesX = width
	}
	tilesY := claheTiles
	if tilesY > height {
		tilesY = height
	}
	// Even division keeps every tile non-empty regardless of image size.
	tileW := float64(width) / float64(tilesX)
	tileH := float64(height) / float64(tilesY)

	luts := make([][]tileLUT, tilesY)
	for ty := 0; ty < tilesY; ty++ {
		luts[ty] = make([]tileLUT, tilesX)
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * width / tilesX
			y0 := ty * height / tilesY
			x1 := (tx + 1) * width / tilesX
			y1 := (ty + 1) * height / tilesY
			luts[ty][tx] = tileMapping(src, x0, y0, x1, y1)
		}
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		// Position relative to tile centers; border pixels clamp to the
		// nearest tile instead of extrapolating.
		fy := (float64(y)+0.5)/tileH - 0.5
		ty0 := int(math.Floor(fy))
		wy := fy - float64(ty0)
		ty1 := clamp(ty0+1, 0, tilesY-1)
		ty0 = clamp(ty0, 0, tilesY-1)

		for x := 0; x < width; x++ {
			fx := (float64(x)+0.5)/tileW - 0.5
			tx0 := int(math.Floor(fx))
			wx := fx - float64(tx0)
			tx1 := clamp(tx0+1, 0, tilesX-1)
			tx0 = clamp(tx0, 0, tilesX-1)

			v := src.GrayAt(x, y).Y
			top := (1-wx)*float64(luts[ty0][tx0][v]) + wx*float64(luts[ty0][tx1][v])
			bottom := (1-wx)*float64(luts[ty1][tx0][v]) + wx*float64(luts[ty1][tx1][v])
			out.SetGray(x, y, color.Gray{Y: uint8((1-wy)*top + wy*bottom + 0.5)})
		}
	}
	return out
}

// tileMapping builds the clipped equalization lookup table for one tile.
func tileMapping(src *image.Gray, x0, y0, x1, y1 int) tileLUT {
	var hist [256]int
	total := (x1 - x0) * (y1 - y0)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[src.GrayAt(x, y).Y]++
		}
	}

	clip := int(claheClip * float64(total) / 256.0)
	if clip < 1 {
		clip = 1
	}

	excess := 0
	for i := range hist {
		if hist[i] > clip {
			excess += hist[i] - clip
			hist[i] = clip
		}
	}

	// Redistribute the clipped mass evenly across all bins.
	share := excess / 256
	remainder := excess % 256
	for i := range hist {
		hist[i] += share
		if i < remainder {
			hist[i]++
		}
	}

	var lut tileLUT
	cum := 0
	scale := float64(paperWhite) / float64(total)
	for i := range hist {
		cum += hist[i]
		lut[i] = uint8(scale*float64(cum) + 0.5)
	}
	return lut
}

// binarize thresholds each pixel against the mean of its 11x11 neighborhood,
// offset by a constant bias. Windows are clamped at the image border. The
// result contains only inkBlack and paperWhite.
func binarize(src *image.Gray) *image.Gray {
	width := src.Rect.Dx()
	height := src.Rect.Dy()
	radius := threshWindow / 2

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum := 0
			count := 0
			for ky := -radius; ky <= radius; ky++ {
				for kx := -radius; kx <= radius; kx++ {
					px := clamp(x+kx, 0, width-1)
					py := clamp(y+ky, 0, height-1)
					sum += int(src.GrayAt(px, py).Y)
					count++
				}
			}
			mean := float64(sum) / float64(count)

			v := uint8(inkBlack)
			if float64(src.GrayAt(x, y).Y) > mean-threshBias {
				v = paperWhite
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in windowed operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
