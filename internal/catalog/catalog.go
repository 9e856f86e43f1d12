// Package catalog projects a raw quiz-summary collection into what the
// user should see. Everything here is a pure function of its inputs; the
// caller re-invokes on every change, there is no cached state.
package catalog

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wikiquiz/quizforge/internal/domain"
)

// SortKey selects the display ordering of the quiz history.
type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortTitle  SortKey = "title"
)

// ParseSortKey normalizes a sort key string; unknown values fall back to
// newest, the default ordering of the history view.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oldest":
		return SortOldest
	case "title":
		return SortTitle
	default:
		return SortNewest
	}
}

// Criteria is the search/sort state applied to the quiz history.
type Criteria struct {
	SearchTerm string
	SortKey    SortKey
}

// Stats are the derived aggregates shown above the history listing.
type Stats struct {
	Total     int
	ThisWeek  int
	ThisMonth int
}

// Apply filters and orders the summaries per the criteria. A summary is
// retained iff the search term is a case-insensitive substring of its
// title or URL; an empty term retains everything. Sorting is stable with
// respect to input order on ties. The input slice is never mutated.
func Apply(summaries []domain.QuizSummary, criteria Criteria) []domain.QuizSummary {
	term := strings.ToLower(criteria.SearchTerm)

	filtered := make([]domain.QuizSummary, 0, len(summaries))
	for _, s := range summaries {
		if term == "" ||
			strings.Contains(strings.ToLower(s.Title), term) ||
			strings.Contains(strings.ToLower(s.URL), term) {
			filtered = append(filtered, s)
		}
	}

	switch criteria.SortKey {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].DateGenerated.Before(filtered[j].DateGenerated)
		})
	case SortTitle:
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(filtered, func(i, j int) bool {
			return coll.CompareString(filtered[i].Title, filtered[j].Title) < 0
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].DateGenerated.After(filtered[j].DateGenerated)
		})
	}

	return filtered
}

// ComputeStats aggregates generation counts relative to now. A summary
// counts toward a window when it was generated strictly after the cutoff.
func ComputeStats(summaries []domain.QuizSummary, now time.Time) Stats {
	weekCutoff := now.Add(-7 * 24 * time.Hour)
	monthCutoff := now.Add(-30 * 24 * time.Hour)

	stats := Stats{Total: len(summaries)}
	for _, s := range summaries {
		if s.DateGenerated.After(weekCutoff) {
			stats.ThisWeek++
		}
		if s.DateGenerated.After(monthCutoff) {
			stats.ThisMonth++
		}
	}
	return stats
}
