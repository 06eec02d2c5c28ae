package query

import (
	"time"

	"github.com/recbook/recbook/internal/record"
)

// Stats summarizes a record set.
type Stats struct {
	Total           int       `json:"total"`
	Updated         int       `json:"updated"` // records updated at least once
	LowestUserID    int64     `json:"lowestUserID"`
	HighestUserID   int64     `json:"highestUserID"`
	EarliestCreated time.Time `json:"earliestCreated"`
	LatestCreated   time.Time `json:"latestCreated"`
	LongestName     string    `json:"longestName"`
}

// Summarize aggregates recs into summary statistics.
// The zero Stats is returned for an empty set.
func Summarize(recs []record.Public) Stats {
	var s Stats
	s.Total = len(recs)
	if s.Total == 0 {
		return s
	}

	s.LowestUserID = recs[0].UserID
	s.HighestUserID = recs[0].UserID
	s.EarliestCreated = recs[0].CreatedAt
	s.LatestCreated = recs[0].CreatedAt

	for _, r := range recs {
		if r.UpdatedAt != nil {
			s.Updated++
		}
		if r.UserID < s.LowestUserID {
			s.LowestUserID = r.UserID
		}
		if r.UserID > s.HighestUserID {
			s.HighestUserID = r.UserID
		}
		if r.CreatedAt.Before(s.EarliestCreated) {
			s.EarliestCreated = r.CreatedAt
		}
		if r.CreatedAt.After(s.LatestCreated) {
			s.LatestCreated = r.CreatedAt
		}
		if len(r.Name) > len(s.LongestName) {
			s.LongestName = r.Name
		}
	}
	return s
}
