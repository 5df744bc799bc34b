// Package ingredient turns raw ingredient-list text, as typed by a user,
// recognised by OCR or listed on a barcode product, into ordered tokens.
package ingredient

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	labelPattern     = regexp.MustCompile(`(?i)^\s*ingredients?:?\s*`)
	separatorPattern = regexp.MustCompile(`\band\b|\n|\t|[\s\p{Z}]{2,}`)
	markupPattern    = regexp.MustCompile(`[<>]`)
	splitPattern     = regexp.MustCompile(`[,;]`)
)

// boilerplate marks tokens that are manufacturer text rather than
// ingredients. Matching is by plain substring, so "zinc" is dropped too.
var boilerplate = []string{"brand", "company", "inc", "ltd"}

// Normalize splits raw into cleaned, lowercased ingredient tokens in input
// order. The word "and" (lowercase, whole word), newlines, tabs and runs of
// whitespace, Unicode spaces included, separate items just like commas and
// semicolons. The whole text is put through Unicode NFKC first, so "TiO₂"
// reads as "tio2" and a full-width "，" is a comma. A leading "Ingredients:"
// label and angle brackets are removed. Empty input yields an empty, non-nil
// slice.
func Normalize(raw string) []string {
	text := norm.NFKC.String(raw)
	text = labelPattern.ReplaceAllString(text, "")
	text = separatorPattern.ReplaceAllString(text, ",")
	text = markupPattern.ReplaceAllString(text, "")

	pieces := splitPattern.Split(text, -1)
	tokens := make([]string, 0, len(pieces))
	for _, p := range pieces {
		tok := strings.ToLower(strings.TrimSpace(p))
		if tok == "" || isBoilerplate(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isBoilerplate(tok string) bool {
	for _, b := range boilerplate {
		if strings.Contains(tok, b) {
			return true
		}
	}
	return false
}

// JoinProduct joins a product record's ingredient list so it can go through
// Normalize like any other text.
func JoinProduct(ingredients []string) string {
	return strings.Join(ingredients, ",")
}

//Personal.AI order the ending
