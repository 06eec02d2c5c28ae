package store

import (
	"context"

	"github.com/recbook/recbook/internal/record"
)

// numericID builds a resolved numeric lookup id.
func numericID(userID int64) record.RecordID {
	return record.RecordID{Kind: record.IDNumeric, UserID: userID}
}

// opaqueID builds a resolved internal-id lookup.
func opaqueID(internal string) record.RecordID {
	return record.RecordID{Kind: record.IDOpaque, InternalID: internal}
}

// countingSnapshotter records Snapshot invocations and optionally fails.
type countingSnapshotter struct {
	calls int
	err   error
}

func (c *countingSnapshotter) Snapshot(ctx context.Context) error {
	c.calls++
	return c.err
}
