// Package ident turns documented names into exported Go identifiers.
package ident

import (
	"strings"
	"unicode"
)

// initialisms are rendered fully upper case, following Go naming.
var initialisms = map[string]bool{
	"api":  true,
	"html": true,
	"http": true,
	"id":   true,
	"ids":  true,
	"json": true,
	"sql":  true,
	"ui":   true,
	"url":  true,
	"urls": true,
	"uuid": true,
	"vcs":  true,
}

// Exported converts a documented name into an exported Go identifier.
// Examples:
//   - "branch_id" -> "BranchID"
//   - "PullRequest" -> "PullRequest"
//   - "num-added" -> "NumAdded"
//   - "in progress" -> "InProgress"
//
// Names with no letters or digits yield "". A leading digit is prefixed
// with "X".
func Exported(s string) string {
	var sb strings.Builder

	for _, tok := range Tokenize(s) {
		lower := strings.ToLower(tok)
		if initialisms[lower] {
			if lower == "ids" || lower == "urls" {
				sb.WriteString(strings.ToUpper(lower[:len(lower)-1]) + "s")
			} else {
				sb.WriteString(strings.ToUpper(lower))
			}

			continue
		}

		runes := []rune(tok)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}

	out := sb.String()
	if out != "" && unicode.IsDigit([]rune(out)[0]) {
		out = "X" + out
	}

	return out
}

// Tokenize splits a name into words at separators and CamelCase boundaries.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customer_name" -> ["customer", "name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "#ff0000" -> ["ff0000"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		// Anything but letters and digits separates tokens.
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prevRune) {
		return true
	}

	// "XMLParser" -> split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
