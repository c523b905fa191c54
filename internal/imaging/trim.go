package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// contentDelta is the minimum intensity difference from the background for a
// pixel to count as formula content during trimming.
const contentDelta = 32

// TrimToContent crops uniform margins around the formula.
//
// The background intensity is estimated as the most common value along the
// one-pixel border of the image. Every pixel differing from it by more than
// contentDelta counts as content; the crop is the bounding box of all content
// pixels, expanded by pad pixels on each side and clamped to the image.
//
// The input is returned unchanged when it is nil, contains no content at all,
// or the padded bounding box already covers the whole image. TrimToContent
// never fails.
func TrimToContent(img image.Image, pad int) image.Image {
	if img == nil {
		return img
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return img
	}

	gray := toGray(img)
	background := borderMode(gray)

	minX, minY := width, height
	maxX, maxY := -1, -1
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			delta := int(gray.GrayAt(x, y).Y) - int(background)
			if delta < 0 {
				delta = -delta
			}
			if delta <= contentDelta {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		// Nothing but background.
		return img
	}

	minX = clamp(minX-pad, 0, width-1)
	minY = clamp(minY-pad, 0, height-1)
	maxX = clamp(maxX+pad, 0, width-1)
	maxY = clamp(maxY+pad, 0, height-1)
	if minX == 0 && minY == 0 && maxX == width-1 && maxY == height-1 {
		return img
	}

	rect := image.Rect(
		bounds.Min.X+minX,
		bounds.Min.Y+minY,
		bounds.Min.X+maxX+1,
		bounds.Min.Y+maxY+1,
	)
	return imaging.Crop(img, rect)
}

// borderMode returns the most frequent intensity along the image border.
func borderMode(gray *image.Gray) uint8 {
	width := gray.Rect.Dx()
	height := gray.Rect.Dy()

	var hist [256]int
	for x := 0; x < width; x++ {
		hist[gray.GrayAt(x, 0).Y]++
		hist[gray.GrayAt(x, height-1).Y]++
	}
	for y := 0; y < height; y++ {
		hist[gray.GrayAt(0, y).Y]++
		hist[gray.GrayAt(width-1, y).Y]++
	}

	mode := 0
	for i, n := range hist {
		if n > hist[mode] {
			mode = i
		}
	}
	return uint8(mode)
}

// SaveImage writes img to path with the encoding chosen by the file
// extension (.png, .jpg, .gif, .tif, .bmp). Used by the CLI to dump the
// normalized bitmap for inspection.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
