package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/YounGuru03/FormulaSnap/internal/typst"
)

// File extensions for exported notation text.
const (
	ExtLaTeX = ".tex"
	ExtTypst = ".typ"
)

// WriteNotation writes a notation value to path as raw UTF-8 text, with no
// header or footer wrapping.
func WriteNotation(n typst.Notation, path string) error {
	if err := os.WriteFile(path, []byte(n.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Export writes both outputs of a result into dir as <stem>.tex and
// <stem>.typ and returns the two paths.
func Export(res Result, dir, stem string) (texPath, typPath string, err error) {
	texPath = filepath.Join(dir, stem+ExtLaTeX)
	typPath = filepath.Join(dir, stem+ExtTypst)

	if err := WriteNotation(res.LaTeX, texPath); err != nil {
		return "", "", err
	}
	if err := WriteNotation(res.Typst, typPath); err != nil {
		return "", "", err
	}
	return texPath, typPath, nil
}
