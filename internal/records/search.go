package records

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Search filters loans by a free-text query. A loan matches when its ID or
// purpose contains the query, or when a word of its purpose is a close
// misspelling of it. An empty query returns loans unchanged.
func Search(loans []Loan, query string) []Loan {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return loans
	}
	var out []Loan
	for _, l := range loans {
		if matchLoan(l, q) {
			out = append(out, l)
		}
	}
	return out
}

func matchLoan(l Loan, q string) bool {
	purpose := strings.ToLower(l.Purpose)
	if strings.Contains(strings.ToLower(l.ID), q) || strings.Contains(purpose, q) {
		return true
	}
	for _, word := range strings.Fields(purpose) {
		if fuzzyWord(word, q) {
			return true
		}
	}
	return false
}

func fuzzyWord(word, q string) bool {
	maxlen := max(len(word), len(q))
	if maxlen == 0 {
		return false
	}
	dist := levenshtein.ComputeDistance(word, q)
	return float64(dist)/float64(maxlen) < 0.4
}
