package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recbook/recbook/internal/record"
)

func rec(userID int64, name string, created time.Time) record.Public {
	return record.Public{UserID: userID, Name: name, CreatedAt: created}
}

func names(recs []record.Public) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}

var base = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestSearchByName_CaseInsensitive(t *testing.T) {
	recs := []record.Public{
		rec(1, "API Token", base),
		rec(2, "database", base),
		rec(3, "api-key", base),
	}

	matches := SearchByName(recs, "API")
	assert.Equal(t, []string{"API Token", "api-key"}, names(matches))

	matches = SearchByName(recs, "BASE")
	assert.Equal(t, []string{"database"}, names(matches))
}

func TestSearchByName_EmptySubstringMatchesAll(t *testing.T) {
	recs := []record.Public{rec(1, "a", base), rec(2, "b", base)}
	assert.Len(t, SearchByName(recs, ""), 2)
}

func TestSearchByName_NoMatch(t *testing.T) {
	recs := []record.Public{rec(1, "alpha", base)}
	matches := SearchByName(recs, "zzz")
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestSortByName(t *testing.T) {
	recs := []record.Public{
		rec(1, "banana", base),
		rec(2, "Apple", base),
		rec(3, "cherry", base),
	}

	asc := SortByName(recs, false)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(asc),
		"collation ignores case")

	desc := SortByName(recs, true)
	assert.Equal(t, []string{"cherry", "banana", "Apple"}, names(desc))
}

func TestSortByName_StableOnTies(t *testing.T) {
	recs := []record.Public{
		rec(1, "same", base),
		rec(2, "same", base),
		rec(3, "same", base),
	}

	sorted := SortByName(recs, false)
	require.Len(t, sorted, 3)
	assert.Equal(t, int64(1), sorted[0].UserID)
	assert.Equal(t, int64(2), sorted[1].UserID)
	assert.Equal(t, int64(3), sorted[2].UserID)
}

func TestSortByCreated(t *testing.T) {
	recs := []record.Public{
		rec(1, "newest", base.Add(2*time.Hour)),
		rec(2, "oldest", base),
		rec(3, "middle", base.Add(time.Hour)),
	}

	asc := SortByCreated(recs, false)
	assert.Equal(t, []string{"oldest", "middle", "newest"}, names(asc))

	desc := SortByCreated(recs, true)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, names(desc))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	recs := []record.Public{
		rec(1, "zeta", base.Add(time.Hour)),
		rec(2, "alpha", base),
	}

	_ = SortByName(recs, false)
	_ = SortByCreated(recs, true)

	assert.Equal(t, []string{"zeta", "alpha"}, names(recs),
		"sorting returns a copy, the input keeps store order")
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Stats{}, s)
}

func TestSummarize(t *testing.T) {
	updated := base.Add(3 * time.Hour)
	recs := []record.Public{
		rec(2, "bb", base.Add(time.Hour)),
		rec(5, "a-very-long-name", base),
		rec(3, "c", base.Add(2*time.Hour)),
	}
	recs[2].UpdatedAt = &updated

	s := Summarize(recs)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Updated)
	assert.Equal(t, int64(2), s.LowestUserID)
	assert.Equal(t, int64(5), s.HighestUserID)
	assert.Equal(t, base, s.EarliestCreated)
	assert.Equal(t, base.Add(2*time.Hour), s.LatestCreated)
	assert.Equal(t, "a-very-long-name", s.LongestName)
}
