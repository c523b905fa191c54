package ocr

import (
	"context"
	"image"
	"strings"

	"github.com/YounGuru03/FormulaSnap/internal/typst"
)

// Engine is the capability contract for an external formula recognizer:
// one bitmap in, LaTeX text out. Implementations may hit native libraries or
// remote services; a test double satisfies the interface just as well.
type Engine interface {
	// Name identifies the engine in results and logs.
	Name() string

	// Recognize extracts the formula in img as LaTeX source text.
	// An empty string with a nil error means the engine saw no formula.
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// FallbackName is the engine name reported when the heuristic fallback
// produced the result.
const FallbackName = "fallback"

// Hard-coded fallback formulas. These are placeholders selected by shape,
// not recognition results; their literal values are kept stable for
// compatibility.
const (
	fallbackWide   = `x = a + b`
	fallbackNarrow = `\frac{a}{b}`
	fallbackTall   = `\sum_{i=1}^{n} x_i`
	fallbackSquare = `x^2 + y^2 = z^2`
	fallbackLast   = `x + y = z`
)

// FallbackLatex classifies a bitmap purely by its width-to-height ratio and
// returns a hard-coded formula guess for that shape:
//
//   - much wider than tall (height < 0.3*width): a flat equation
//   - much taller than wide (width < 0.3*height): a fraction
//   - taller than wide otherwise: a sum
//   - roughly square: a squares identity
//
// Degenerate dimensions fall through to the simplest literal of all.
func FallbackLatex(width, height int) string {
	switch {
	case width <= 0 || height <= 0:
		return fallbackLast
	case float64(height) < 0.3*float64(width):
		return fallbackWide
	case float64(width) < 0.3*float64(height):
		return fallbackNarrow
	case height > width:
		return fallbackTall
	default:
		return fallbackSquare
	}
}

// Recognition is the outcome of a single recognition attempt.
type Recognition struct {
	// Notation is the recognized (or guessed) formula, tagged as LaTeX.
	Notation typst.Notation

	// Engine names the engine that produced the text, or FallbackName.
	Engine string

	// Fallback is true when the heuristic guess was used instead of a
	// real engine result.
	Fallback bool
}

// Recognizer is the recognition facade: it prefers the injected engine and
// silently degrades to the aspect-ratio fallback when the engine is missing,
// fails, or returns empty output.
type Recognizer struct {
	engine Engine
}

// New creates a Recognizer around engine. A nil engine is valid and means
// every recognition uses the fallback.
func New(engine Engine) *Recognizer {
	return &Recognizer{engine: engine}
}

// Recognize extracts the formula in img as LaTeX notation.
//
// The engine's output is trimmed of surrounding whitespace. An engine error
// is treated the same as an absent engine: the fallback answers instead, and
// no error surfaces to the caller. The classifier sees the bitmap that was
// passed in; normalization preserves dimensions, so normalized and original
// bitmaps classify identically.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) Recognition {
	if r.engine != nil && img != nil {
		text, err := r.engine.Recognize(ctx, img)
		if err == nil {
			if text = strings.TrimSpace(text); text != "" {
				return Recognition{
					Notation: typst.LaTeX(text),
					Engine:   r.engine.Name(),
				}
			}
		}
	}

	width, height := 0, 0
	if img != nil {
		b := img.Bounds()
		width, height = b.Dx(), b.Dy()
	}
	return Recognition{
		Notation: typst.LaTeX(FallbackLatex(width, height)),
		Engine:   FallbackName,
		Fallback: true,
	}
}
