package typst

import "strings"

// Kind identifies the markup dialect of a Notation value.
type Kind string

const (
	// KindLaTeX marks text in LaTeX math notation, as produced by the
	// recognition engine or the heuristic fallback.
	KindLaTeX Kind = "latex"

	// KindTypst marks text in Typst math notation. Typst values are only
	// ever derived from LaTeX values via ToTypst.
	KindTypst Kind = "typst"
)

// Notation is an immutable UTF-8 text value tagged with its markup dialect.
type Notation struct {
	value string
	kind  Kind
}

// LaTeX wraps a string as LaTeX notation.
func LaTeX(s string) Notation {
	return Notation{value: s, kind: KindLaTeX}
}

// String returns the raw text of the notation.
func (n Notation) String() string { return n.value }

// Kind returns the markup dialect tag.
func (n Notation) Kind() Kind { return n.kind }

// IsEmpty reports whether the notation contains no text.
func (n Notation) IsEmpty() bool { return n.value == "" }

// Rule is a single literal substitution from a LaTeX token to a Typst token.
type Rule struct {
	From string `json:"from"` // LaTeX source token
	To   string `json:"to"`   // Typst replacement token
}

// ConversionTable is the ordered substitution table applied by ToTypst.
//
// The order is load-bearing: the `}{` rule relies on the opening sequences
// above it having already been rewritten, so do not reorder or convert this
// to a map.
var ConversionTable = []Rule{
	{From: `\frac{`, To: `frac(`},
	{From: `}{`, To: `, `},
	{From: `\sqrt{`, To: `sqrt(`},
	{From: `\sum_{`, To: `sum_(`},
	{From: `\int_{`, To: `integral_(`},
	{From: `\lim_{`, To: `lim_(`},
	{From: `\alpha`, To: `alpha`},
	{From: `\beta`, To: `beta`},
	{From: `\gamma`, To: `gamma`},
	{From: `\delta`, To: `delta`},
	{From: `\epsilon`, To: `epsilon`},
	{From: `\pi`, To: `pi`},
	{From: `\theta`, To: `theta`},
	{From: `\infty`, To: `infinity`},
	{From: `\leq`, To: `<=`},
	{From: `\geq`, To: `>=`},
	{From: `\neq`, To: `!=`},
	{From: `\cdot`, To: `dot`},
	{From: `\times`, To: `times`},
	{From: `\div`, To: `/`},
}

// ToTypst derives a Typst notation value from a LaTeX notation value.
//
// Each table rule is applied as a literal, all-occurrences substring
// replacement over the running string, in table order. After the table has
// been applied, every remaining `}` becomes `)`. Unmatched `{` is preserved
// verbatim; the asymmetry is intentional and matches the argument-opening
// rules (`\frac{` and friends) which already emit `(`.
//
// The function is total over well-formed UTF-8 input and never fails;
// malformed LaTeX simply passes through with only its literal matches
// rewritten.
func ToTypst(latex Notation) Notation {
	s := latex.String()
	for _, rule := range ConversionTable {
		s = strings.ReplaceAll(s, rule.From, rule.To)
	}
	s = strings.ReplaceAll(s, "}", ")")
	return Notation{value: s, kind: KindTypst}
}
