// Package ocr turns a formula bitmap into LaTeX text.
//
// The actual recognition is delegated to an external engine behind the Engine
// interface; this package is boundary glue, not a recognizer. The default
// engine binding uses Tesseract via gosseract. When no engine is available,
// or the engine returns nothing, a heuristic fallback picks one of a handful
// of hard-coded formulas based purely on the bitmap's aspect ratio.
//
// # Engine Availability
//
// The system Tesseract installation is probed with Info. Engine
// unavailability is not an error anywhere in this package: the Recognizer
// silently degrades to the fallback so the application stays usable on
// machines without the engine installed.
//
// # Prerequisites for the Tesseract engine
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data is selected with TesseractEngine.Language using Tesseract
// language codes ("eng", "deu", ...). The matching tesseract-ocr-<lang>
// package must be installed.
//
// # The Fallback Is a Placeholder
//
// The aspect-ratio classifier is not a recognition result; it exists so the
// rest of the pipeline has deterministic output to exercise when the engine
// is absent. Its literal outputs are kept stable for compatibility and are
// not worth hardening further.
package ocr
