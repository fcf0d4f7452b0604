// Package codec parses and serializes the triplet wire format:
//
//	{key1="value1", key2="value2"} Predicate(Subject, Object)
//
// The braces block is optional and omitted when there are no modifiers.
// Absent arguments are written as the literal token "null". Modifier values
// cannot contain a quote character and arguments cannot contain call
// punctuation; this is a known grammar limitation, kept for compatibility
// with the existing export format.
package codec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/triplex-nlp/triplex/internal/model"
)

// MissingPredicate is the placeholder token Format emits when a triplet has
// no predicate, so the call head is never empty.
const MissingPredicate = "Unknown"

// Word characters must cover CJK: Go's \w is ASCII-only.
var (
	modsBlockPattern = regexp.MustCompile(`\{([^}]*)\}`)
	modPairPattern   = regexp.MustCompile(`([\p{L}\p{N}_]+)="([^"]*)"`)
	callPattern      = regexp.MustCompile(`([\p{L}\p{N}_]+)\(([^,]*),\s*([^)]*)\)`)
)

// Parse decodes triplet text into a Triplet. It never fails: on total
// grammar mismatch it returns a triplet with no predicate, no arguments and
// no modifiers, keeping the raw text for audit. Malformed candidates flow
// into validation, where the structural check reports the missing predicate
// as an ordinary issue.
func Parse(text string) model.Triplet {
	t := model.Triplet{Raw: strings.TrimSpace(text)}

	rest := text
	if loc := modsBlockPattern.FindStringSubmatchIndex(text); loc != nil {
		block := text[loc[2]:loc[3]]
		for _, pair := range modPairPattern.FindAllStringSubmatch(block, -1) {
			t.Mods = append(t.Mods, model.Mod{Role: pair[1], Value: pair[2]})
		}
		// Search the call after the braces block so modifier values that
		// happen to contain parentheses cannot shadow the real call.
		rest = text[loc[1]:]
	}

	if m := callPattern.FindStringSubmatch(rest); m != nil {
		t.Predicate = m[1]
		t.Subject = cleanArg(m[2])
		t.Object = cleanArg(m[3])
	}

	return t
}

// Format renders a triplet in canonical wire format. For any triplet
// produced by Parse, Parse(Format(t)) reproduces the same predicate,
// arguments and modifier mapping.
func Format(t model.Triplet) string {
	predicate := t.Predicate
	if predicate == "" {
		predicate = MissingPredicate
	}

	call := fmt.Sprintf("%s(%s, %s)", predicate, argToken(t.Subject), argToken(t.Object))
	if len(t.Mods) == 0 {
		return call
	}

	pairs := make([]string, 0, len(t.Mods))
	for _, mod := range t.Mods {
		pairs = append(pairs, fmt.Sprintf(`%s="%s"`, mod.Role, mod.Value))
	}
	return fmt.Sprintf("{%s} %s", strings.Join(pairs, ", "), call)
}

// cleanArg normalizes a captured argument: whitespace-only and the
// case-insensitive token "null" both mean absent.
func cleanArg(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

func argToken(s string) string {
	if s == "" {
		return "null"
	}
	return s
}
