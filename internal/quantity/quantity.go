// Package quantity combines and scales ingredient quantities. A quantity is
// either a plain numeric string ("100", "0.5") or a compound expression the
// arithmetic cannot interpret ("1à3", "a pinch"); compound values are merged
// textually so they are never silently discarded.
package quantity

import (
	"strconv"
	"strings"
)

const mergeJoin = " + "

// Sum adds two quantities. Both numeric: numeric sum. Otherwise the two
// expressions are joined textually.
func Sum(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	numberA, okA := Parse(a)
	numberB, okB := Parse(b)
	if okA && okB {
		return Format(numberA + numberB)
	}
	return a + mergeJoin + b
}

// Subtract removes b from a. A numeric result of zero or less, or a textual
// result with nothing left, comes back as the empty string — callers treat
// that as "remove the entry entirely".
func Subtract(a, b string) string {
	if b == "" {
		return a
	}
	numberA, okA := Parse(a)
	numberB, okB := Parse(b)
	if okA && okB {
		difference := numberA - numberB
		if difference <= 0 {
			return ""
		}
		return Format(difference)
	}
	if a == b {
		return ""
	}
	// Undo a previous textual merge of b, wherever it sits in the chain.
	if trimmed, found := strings.CutPrefix(a, b+mergeJoin); found {
		return trimmed
	}
	if trimmed, found := strings.CutSuffix(a, mergeJoin+b); found {
		return trimmed
	}
	if replaced := strings.Replace(a, mergeJoin+b+mergeJoin, mergeJoin, 1); replaced != a {
		return replaced
	}
	return a
}

// ScaleForPersons rescales a numeric quantity linearly from oldPersons to
// newPersons. Non-numeric quantities and invalid serving counts pass
// through unchanged.
func ScaleForPersons(quantity string, oldPersons, newPersons int) string {
	if oldPersons <= 0 || newPersons <= 0 {
		return quantity
	}
	number, ok := Parse(quantity)
	if !ok {
		return quantity
	}
	return Format(number * float64(newPersons) / float64(oldPersons))
}

// Parse reports whether the quantity is plain numeric.
func Parse(quantity string) (float64, bool) {
	number, err := strconv.ParseFloat(strings.TrimSpace(quantity), 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

func Format(number float64) string {
	return strconv.FormatFloat(number, 'f', -1, 64)
}
