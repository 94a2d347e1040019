package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Rank filters entries by query and orders them best match first. An entry
// matches when its title or artist contains the query, or when the title is
// within a third of the query's length in edit distance of it. An empty query
// returns entries unchanged.
func Rank(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	type scored struct {
		e     Entry
		score int
	}
	var hits []scored
	for _, e := range entries {
		title := strings.ToLower(e.Title)
		artist := strings.ToLower(e.Artist)
		switch {
		case strings.HasPrefix(title, q):
			hits = append(hits, scored{e, 0})
		case strings.Contains(title, q):
			hits = append(hits, scored{e, 1})
		case strings.Contains(artist, q):
			hits = append(hits, scored{e, 2})
		default:
			d := bestWordDistance(title, q)
			if d*3 <= len(q) {
				hits = append(hits, scored{e, 3 + d})
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.e
	}
	return out
}

// bestWordDistance compares q against the whole title and each of its words
// and returns the smallest edit distance.
func bestWordDistance(title, q string) int {
	best := levenshtein.ComputeDistance(title, q)
	for _, w := range strings.Fields(title) {
		if d := levenshtein.ComputeDistance(w, q); d < best {
			best = d
		}
	}
	return best
}
