package airports

import (
	"sort"
	"strings"
)

// Filter narrows the airport list. The zero value matches everything.
type Filter struct {
	Country       string
	MajorHubsOnly bool
}

// IsZero reports whether the filter is the default one.
func (f Filter) IsZero() bool {
	return f.Country == "" && !f.MajorHubsOnly
}

// Match reports whether a satisfies both predicates.
func (f Filter) Match(a Airport) bool {
	if f.Country != "" && a.Country != f.Country {
		return false
	}
	if f.MajorHubsOnly && !a.MajorHub {
		return false
	}
	return true
}

// ApplyFilter returns a new slice with the airports of all matching f, in
// their original order.
func ApplyFilter(all []Airport, f Filter) []Airport {
	out := make([]Airport, 0, len(all))
	for _, a := range all {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// Countries returns the sorted set of country names in list.
func Countries(list []Airport) []string {
	set := make(map[string]struct{})
	for _, a := range list {
		if a.Country == "" {
			continue
		}
		set[a.Country] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MinSearchLen is the shortest query Search will act on.
const MinSearchLen = 2

// Search returns up to limit airports whose name, city, country or IATA code
// contains query, ignoring case. Queries shorter than MinSearchLen return nil.
func Search(all []Airport, query string, limit int) []Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < MinSearchLen || limit <= 0 {
		return nil
	}

	var out []Airport
	for _, a := range all {
		if matchesQuery(a, q) {
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func matchesQuery(a Airport, q string) bool {
	return strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.City), q) ||
		strings.Contains(strings.ToLower(a.Country), q) ||
		strings.Contains(strings.ToLower(a.IATA), q)
}
