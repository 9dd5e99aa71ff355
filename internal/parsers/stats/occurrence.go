// Package stats parses occurrence counts out of a document's closing
// notes. The counts are informal prose like "incorrectly implemented 161
// out of 213 times"; only one fixed pattern is recognised, anything else
// is treated as absent data, never guessed.
package stats

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

var (
	// "161 out of 213" — with or without a trailing "times".
	outOfRe = regexp.MustCompile(`\b(\d+)\s+out\s+of\s+(\d+)(?:\s+times)?\b`)

	// "161 times" — bare count, total opportunities unknown.
	timesRe = regexp.MustCompile(`\b(\d+)\s+times\b`)
)

// Parse extracts an OccurrenceStat from free text. Returns nil when the
// text contains no recognised count. A "N out of M" match with M < N is
// rejected as absent data since the invariant total >= occurrences
// cannot hold.
func Parse(text string) *domain.OccurrenceStat {
	if m := outOfRe.FindStringSubmatch(text); m != nil {
		occurrences, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		if total < occurrences {
			return nil
		}
		return &domain.OccurrenceStat{
			Occurrences:        occurrences,
			TotalOpportunities: &total,
		}
	}

	if m := timesRe.FindStringSubmatch(text); m != nil {
		occurrences, _ := strconv.Atoi(m[1])
		return &domain.OccurrenceStat{Occurrences: occurrences}
	}

	return nil
}
