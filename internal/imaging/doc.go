// Package imaging provides bitmap loading and the recognition preprocessing
// pipeline for formula images.
//
// The package decodes PNG, JPEG, GIF, BMP and TIFF images into standard Go
// image.Image values and prepares them for the recognition engine. All
// coordinates are 0-based with the origin at the top-left corner.
//
// # Normalization Pipeline
//
// Normalize runs a fixed four-step pipeline tuned for printed or rendered
// mathematical notation:
//
//  1. Grayscale conversion using standard luma weighting
//  2. Median noise filter over a 3x3 window
//  3. Contrast-limited adaptive histogram equalization (CLAHE) with an
//     8x8 tile grid and clip limit 2.0
//  4. Adaptive binarization against the local 11x11 mean, bias 2,
//     producing a strictly black/white image
//
// Normalize is total: any internal failure degrades to returning the input
// unchanged instead of propagating an error. The output always has the same
// width and height as the input.
//
// # Supporting Helpers
//
// MeasurePolarity and EnsureDarkOnLight detect light-on-dark captures (for
// example a screenshot of a dark-mode editor) and invert them so that the
// thresholding step sees the dark-ink-on-light-paper orientation it expects.
// TrimToContent crops uniform margins around the formula. Both are optional
// pre-steps; neither is part of the fixed Normalize pipeline.
//
// # Error Handling
//
// Loading functions return errors for missing files and undecodable data.
// The preprocessing functions never return errors: they are total over their
// inputs and degrade to identity on anything malformed.
package imaging
