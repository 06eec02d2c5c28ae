package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/recbook/recbook/internal/record"
)

const recordColumns = `id, user_id, name, value, created_at, updated_at`

// List returns every record in store-native (insertion) order,
// normalized. Returns an empty slice (not nil) for an empty store.
// No ordering beyond insertion order is guaranteed; sorted views are
// produced in memory by the query package.
func (s *Store) List(ctx context.Context) ([]record.Public, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM records ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var recs []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return record.ToPublicAll(recs), nil
}

// Find returns the normalized record matching id, if any.
// Invalid tokens and missing records report found=false, not an error.
func (s *Store) Find(ctx context.Context, id record.RecordID) (record.Public, bool, error) {
	if _, err := s.conn(ctx); err != nil {
		return record.Public{}, false, err
	}

	rec, found, err := s.findByID(ctx, id)
	if err != nil || !found {
		return record.Public{}, false, err
	}
	return record.ToPublic(rec), true, nil
}

// findByID resolves a tagged RecordID against the table.
// Dispatches on the id kind; IDInvalid matches nothing by construction.
func (s *Store) findByID(ctx context.Context, id record.RecordID) (record.Record, bool, error) {
	var where string
	var arg any

	switch id.Kind {
	case record.IDNumeric:
		where, arg = "user_id = ?", id.UserID
	case record.IDOpaque:
		where, arg = "id = ?", id.InternalID
	default:
		return record.Record{}, false, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM records WHERE `+where+` LIMIT 1
	`, arg)

	rec, err := scanRecordRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Record{}, false, nil
	}
	if err != nil {
		return record.Record{}, false, err
	}
	return rec, true, nil
}

// readByInternalID fetches the canonical stored row after a mutation.
func (s *Store) readByInternalID(ctx context.Context, internalID string) (record.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM records WHERE id = ?
	`, internalID)
	return scanRecordRow(row)
}

// scanRecord scans one row from a multi-row result set.
func scanRecord(rows *sql.Rows) (record.Record, error) {
	var rec record.Record
	var created string
	var updated sql.NullString

	if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Value, &created, &updated); err != nil {
		return record.Record{}, fmt.Errorf("scan record: %w", err)
	}

	rec.CreatedAt = parseStoredTime(created)
	if updated.Valid {
		if t := parseStoredTime(updated.String); !t.IsZero() {
			rec.UpdatedAt = &t
		}
	}
	return rec, nil
}

// scanRecordRow scans a single-row query result.
func scanRecordRow(row *sql.Row) (record.Record, error) {
	var rec record.Record
	var created string
	var updated sql.NullString

	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Value, &created, &updated); err != nil {
		return record.Record{}, err
	}

	rec.CreatedAt = parseStoredTime(created)
	if updated.Valid {
		if t := parseStoredTime(updated.String); !t.IsZero() {
			rec.UpdatedAt = &t
		}
	}
	return rec, nil
}

// parseStoredTime parses a stored timestamp leniently.
// Malformed values degrade to the zero time; normalization never fails
// on bad data already in the table.
func parseStoredTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
