// Package corpus handles sentence intake: fetching web pages, extracting
// visible text, splitting it into candidate sentences and scoring their
// suitability for extraction.
package corpus

import (
	"regexp"
	"unicode/utf8"
)

var (
	specialCharPattern = regexp.MustCompile(`[^a-zA-Z0-9\p{Han}，。！？；：、·\s]`)
	cjkPattern         = regexp.MustCompile(`\p{Han}`)
	// A CJK sentence without any of these is usually a fragment rather
	// than a clause with a predicate.
	cjkVerbPattern = regexp.MustCompile(`[是有做说给去来在被]`)
)

// Score rates a candidate sentence between 0 and 1. Penalties accumulate
// for bad length, heavy punctuation noise, character runs and, for CJK
// text, the absence of any common verb or copula.
func Score(sentence string) float64 {
	if sentence == "" {
		return 0
	}

	score := 1.0

	runes := utf8.RuneCountInString(sentence)
	if runes < 8 || runes > 120 {
		score -= 0.3
	}

	special := len(specialCharPattern.FindAllString(sentence, -1))
	if float64(special)/float64(runes) > 0.2 {
		score -= 0.2
	}

	if hasCharRun(sentence, 4) {
		score -= 0.2
	}

	if cjkPattern.MatchString(sentence) && !cjkVerbPattern.MatchString(sentence) {
		score -= 0.15
	}

	if score < 0 {
		return 0
	}
	return score
}

// hasCharRun reports whether any rune repeats at least n times in a row.
// Done by hand because RE2 has no backreferences.
func hasCharRun(s string, n int) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev {
			count++
			if count >= n {
				return true
			}
		} else {
			prev = r
			count = 1
		}
	}
	return false
}
