// Package query provides in-memory views over normalized records:
// case-insensitive search, stable sorted permutations, and summary
// statistics.
//
// Everything here is pure: inputs are never mutated and the store is
// never touched. Sorted results are fresh slices in a fully ordered,
// stable permutation of the input.
package query

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/recbook/recbook/internal/record"
)

// SearchByName returns all records whose name contains substr,
// compared case-insensitively using Unicode case folding.
// An empty substring matches everything.
func SearchByName(recs []record.Public, substr string) []record.Public {
	fold := cases.Fold()
	needle := fold.String(substr)

	out := make([]record.Public, 0)
	for _, r := range recs {
		if strings.Contains(fold.String(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// SortByName returns a stable copy of recs ordered by name.
// Ordering uses Unicode collation (case-insensitive) so results are
// consistent regardless of platform or record casing.
func SortByName(recs []record.Public, desc bool) []record.Public {
	out := slices.Clone(recs)
	coll := collate.New(language.Und, collate.IgnoreCase)

	sort.SliceStable(out, func(i, j int) bool {
		c := coll.CompareString(out[i].Name, out[j].Name)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// SortByCreated returns a stable copy of recs ordered by creation time.
func SortByCreated(recs []record.Public, desc bool) []record.Public {
	out := slices.Clone(recs)

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
