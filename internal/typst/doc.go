// Package typst converts LaTeX math notation to Typst math notation.
//
// The conversion is a surface-level token rewrite, not a parser. A fixed,
// ordered table of literal substitutions maps common LaTeX control sequences
// (fractions, roots, sums, Greek letters, relation symbols) to their Typst
// spellings, and any closing brace left over after the table has been applied
// becomes a closing parenthesis. Nothing validates brace balance or nesting:
// commands absent from the table and unmatched opening braces pass through
// untouched.
//
// # Rule Ordering
//
// The order of the substitution table is significant. Earlier rules consume
// text that later rules would otherwise match; for example the `}{` rule only
// produces correct argument separators because the `\frac{` rule has already
// removed the opening sequence. The table must therefore be applied strictly
// in order, and the trailing brace sweep strictly last.
//
// # Determinism
//
// ToTypst is a pure function: identical input always yields identical output.
// There is no backtracking and no state shared between calls.
package typst
