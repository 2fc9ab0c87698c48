package usecases

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// ambiguousOrdinals are street-number suffixes that make the boundary
// between house number and street name impossible to place: "two one forty
// eighth" could be 21 48th, 2 148th or 2140 8th.
var ambiguousOrdinals = map[string]bool{
	"first": true, "second": true, "third": true, "fourth": true, "fifth": true,
	"sixth": true, "seventh": true, "eighth": true, "ninth": true, "tenth": true,
	"eleventh": true, "twelfth": true, "thirteenth": true, "fourteenth": true,
	"fifteenth": true, "sixteenth": true, "seventeenth": true, "eighteenth": true,
	"nineteenth": true, "twentieth": true, "thirtieth": true, "fortieth": true,
	"fiftieth": true, "sixtieth": true, "seventieth": true, "eightieth": true,
	"ninetieth": true, "hundredth": true,
}

var (
	onesWords = map[string]int{
		"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
		"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	}
	teenWords = map[string]int{
		"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
		"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	}
	tensWords = map[string]int{
		"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
		"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	}
)

// NormalizeAddress converts a spoken street address to a postal string:
// number words become digits and adjacent digit groups are merged, so
// "six oh one union street" becomes "601 union street". Empty input yields
// an empty address. Addresses containing an ordinal word are rejected with
// *domain.UnparseableAddressError.
func NormalizeAddress(raw string) (domain.NormalizedAddress, error) {
	words := tokenizeAddress(raw)
	if len(words) == 0 {
		return domain.NormalizedAddress{}, nil
	}

	for _, w := range words {
		if ambiguousOrdinals[bareWord(w)] {
			return domain.NormalizedAddress{}, &domain.UnparseableAddressError{Word: w}
		}
	}

	out := make([]string, 0, len(words))
	var run []string
	// lead is punctuation that prefixed the first word of run.
	var lead string
	flush := func() {
		if len(run) == 0 {
			return
		}
		digits := wordsToDigits(run)
		if lead != "" {
			out = append(out, lead+digits)
		} else {
			out = appendDigits(out, digits)
		}
		run, lead = run[:0], ""
	}
	for _, w := range words {
		lw := bareWord(w)
		if lw == "oh" {
			lw = "zero"
		}
		if isNumberWord(lw) {
			pre, post := punctAround(w)
			if pre != "" {
				flush()
				lead = pre
			}
			run = append(run, lw)
			if post != "" {
				// "one," closes the number; the comma stays on it.
				flush()
				out[len(out)-1] += post
			}
			continue
		}
		flush()
		if isDigits(w) {
			out = appendDigits(out, w)
			continue
		}
		out = append(out, w)
	}
	flush()

	return domain.NormalizedAddress{Text: strings.Join(out, " ")}, nil
}

// tokenizeAddress splits on whitespace and splits hyphenated words whose
// parts are all number or ordinal words ("twenty-first").
func tokenizeAddress(raw string) []string {
	var words []string
	for _, f := range strings.Fields(raw) {
		if !strings.Contains(f, "-") {
			words = append(words, f)
			continue
		}
		parts := strings.Split(f, "-")
		numeric := true
		for _, p := range parts {
			lp := bareWord(p)
			if !isNumberWord(lp) && !ambiguousOrdinals[lp] {
				numeric = false
				break
			}
		}
		if numeric {
			words = append(words, parts...)
		} else {
			words = append(words, f)
		}
	}
	return words
}

// bareWord lowercases w and strips its leading and trailing punctuation.
func bareWord(w string) string {
	return strings.ToLower(strings.TrimFunc(w, unicode.IsPunct))
}

// punctAround returns the punctuation before and after the letters of w.
func punctAround(w string) (pre, post string) {
	core := strings.TrimFunc(w, unicode.IsPunct)
	if core == "" {
		return w, ""
	}
	i := strings.Index(w, core)
	return w[:i], w[i+len(core):]
}

// appendDigits merges a digit token into a preceding digit token.
func appendDigits(out []string, digits string) []string {
	if n := len(out); n > 0 && isDigits(out[n-1]) {
		out[n-1] += digits
		return out
	}
	return append(out, digits)
}

// numberGroup is one spoken number being assembled, e.g. "five hundred twelve".
type numberGroup struct {
	value int
	// tensOpen: last word was a tens word, a following 1-9 completes it.
	tensOpen bool
	// scaleOpen: last word was hundred/thousand, a following number adds to it.
	scaleOpen bool
	// below is the part of value under the most recent scale word.
	below int
}

// wordsToDigits converts a run of number words to the concatenation of the
// numbers they speak: "five forty seven" is "5" and "47", so "547".
func wordsToDigits(words []string) string {
	var groups []*numberGroup
	cur := func() *numberGroup {
		if len(groups) == 0 {
			return nil
		}
		return groups[len(groups)-1]
	}
	start := func(g *numberGroup) { groups = append(groups, g) }

	for _, w := range words {
		g := cur()
		switch {
		case w == "zero":
			start(&numberGroup{})
		case onesWords[w] > 0:
			n := onesWords[w]
			if g != nil && (g.tensOpen || g.scaleOpen) {
				g.value += n
				g.below += n
				g.tensOpen, g.scaleOpen = false, false
			} else {
				start(&numberGroup{value: n, below: n})
			}
		case teenWords[w] > 0:
			n := teenWords[w]
			if g != nil && g.scaleOpen {
				g.value += n
				g.below += n
				g.scaleOpen = false
			} else {
				start(&numberGroup{value: n, below: n})
			}
		case tensWords[w] > 0:
			n := tensWords[w]
			if g != nil && g.scaleOpen {
				g.value += n
				g.below += n
				g.scaleOpen, g.tensOpen = false, true
			} else {
				start(&numberGroup{value: n, below: n, tensOpen: true})
			}
		case w == "hundred":
			if g != nil && !g.scaleOpen && g.below > 0 && g.below < 100 {
				g.value += g.below*100 - g.below
				g.below *= 100
				g.tensOpen, g.scaleOpen = false, true
			} else {
				start(&numberGroup{value: 100, below: 100, scaleOpen: true})
			}
		case w == "thousand":
			if g != nil && !g.scaleOpen && g.value > 0 && g.value < 1000 {
				g.value *= 1000
				g.below = 0
				g.tensOpen, g.scaleOpen = false, true
			} else {
				start(&numberGroup{value: 1000, scaleOpen: true})
			}
		}
	}

	var b strings.Builder
	for _, g := range groups {
		b.WriteString(strconv.Itoa(g.value))
	}
	return b.String()
}

func isNumberWord(w string) bool {
	if _, ok := onesWords[w]; ok {
		return true
	}
	if _, ok := teenWords[w]; ok {
		return true
	}
	if _, ok := tensWords[w]; ok {
		return true
	}
	return w == "hundred" || w == "thousand"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
