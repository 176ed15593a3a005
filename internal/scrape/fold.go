package scrape

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// typographic maps punctuation that has no compatibility decomposition to
// its ASCII counterpart.
var typographic = map[rune]rune{
	'‘': '\'', // left single quote
	'’': '\'', // right single quote
	'‚': '\'',
	'‛': '\'',
	'′': '\'', // prime
	'“': '"', // left double quote
	'”': '"', // right double quote
	'„': '"',
	'‟': '"',
	'‐': '-', // hyphen
	'‑': '-',
	'‒': '-',
	'–': '-', // en dash
	'—': '-', // em dash
	'―': '-',
	'−': '-', // minus
	'•': '*', // bullet
}

// Fold rewrites documentation text to plain ASCII where it can: diacritics
// are dropped, compatibility characters are decomposed, typographic quotes
// and dashes are replaced, and runs of whitespace collapse to one space.
// Characters with no ASCII form are kept as they are.
func Fold(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if ascii, ok := typographic[r]; ok {
				return ascii
			}

			return r
		}),
		norm.NFC,
	)

	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.Join(strings.Fields(folded), " ")
}
