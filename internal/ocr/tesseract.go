package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes formulas with the system Tesseract installation
// via gosseract. It is the default Engine binding.
//
// Tesseract works on files, so each recognition round-trips the bitmap
// through a temporary PNG in the system temp directory; the file is removed
// when recognition completes.
type TesseractEngine struct {
	// Language is the Tesseract language code ("eng", "deu", ...).
	// Empty means the client default.
	Language string
}

// Name implements Engine.
func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize implements Engine by running Tesseract over a temporary PNG
// encoding of img. The returned text is trimmed of surrounding whitespace.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img == nil {
		return "", errors.New("nil image")
	}

	tmpPath, err := saveTempPNG(img, "formulasnap-ocr")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	if e.Language != "" {
		if err := client.SetLanguage(e.Language); err != nil {
			return "", fmt.Errorf("failed to set language: %w", err)
		}
	}
	if err := client.SetImage(tmpPath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// EngineInfo reports availability of the system recognition engine.
type EngineInfo struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
	Backend   string `json:"backend"`
}

// Info probes the Tesseract installation. It never fails; an unusable
// installation is reported through the Available and Error fields so callers
// can decide whether to construct a TesseractEngine or run on the fallback.
func Info() EngineInfo {
	version, err := tesseractVersion()
	if err != nil {
		return EngineInfo{
			Available: false,
			Error:     err.Error(),
			Backend:   "gosseract",
		}
	}
	return EngineInfo{
		Available: true,
		Version:   version,
		Backend:   "gosseract",
	}
}

// tesseractVersion asks the native library for its version, converting any
// panic from a broken installation into an error.
func tesseractVersion() (version string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tesseract unavailable: %v", r)
		}
	}()

	client := gosseract.NewClient()
	defer client.Close()

	version = client.Version()
	if version == "" {
		return "", errors.New("tesseract reported no version")
	}
	return version, nil
}

// saveTempPNG writes img to a temporary PNG file and returns its path.
// The caller is responsible for removing the file.
func saveTempPNG(img image.Image, prefix string) (string, error) {
	tmpFile, err := os.CreateTemp("", prefix+"-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return tmpPath, nil
}
