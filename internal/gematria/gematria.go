// Package gematria computes simple gematria values for text and reduces them
// to numerological digits.
package gematria

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterValues is the simple gematria table used by the site.
// The progression is 1..10, then steps of 10 up to S, then steps of 100.
var letterValues = map[rune]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8, 'I': 9, 'J': 10,
	'K': 20, 'L': 30, 'M': 40, 'N': 50, 'O': 60, 'P': 70, 'Q': 80, 'R': 90, 'S': 100,
	'T': 200, 'U': 300, 'V': 400, 'W': 500, 'X': 600, 'Y': 700, 'Z': 800,
}

// Result holds the raw sum of a text and its reduced value.
type Result struct {
	RawSum  int `json:"raw_sum" yaml:"raw_sum"`
	Reduced int `json:"reduced" yaml:"reduced"`
}

// LetterValue returns the table value of an uppercase Latin letter, or 0.
func LetterValue(r rune) int {
	return letterValues[r]
}

// Normalize strips diacritics, uppercases and removes everything that is not
// a Latin letter or whitespace.
func Normalize(text string) string {
	// transformers keep internal state, so they are built per call
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(stripper, text)
	if err != nil {
		stripped = text
	}
	upper := cases.Upper(language.Und).String(stripped)

	var b strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Sum returns the gematria value of text. Empty or non alphabetic text is 0.
func Sum(text string) int {
	normalized := Normalize(text)
	if normalized == "" {
		return 0
	}

	sum := 0
	for _, r := range normalized {
		if r == ' ' {
			continue
		}
		sum += letterValues[r]
	}
	return sum
}

// Compute returns both the raw sum and its reduction.
func Compute(text string) Result {
	sum := Sum(text)
	return Result{
		RawSum:  sum,
		Reduced: Reduce(sum),
	}
}

// IsMasterNumber reports whether n is one of 11, 22 or 33.
func IsMasterNumber(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// Reduce sums decimal digits until the value is a single digit or a master number.
func Reduce(n int) int {
	for n > 9 && !IsMasterNumber(n) {
		n = digitSum(n)
	}
	return n
}

// LifePath is the reduction used for the "life path" line of an analysis.
func LifePath(n int) int {
	return Reduce(n)
}

func digitSum(n int) int {
	sum := 0
	for _, d := range strconv.Itoa(n) {
		sum += int(d - '0')
	}
	return sum
}
