package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recbook/recbook/internal/bus"
	"github.com/recbook/recbook/internal/record"
)

// Add creates a new record.
//
// The UserID is allocated from the counter exactly once per call
// (increment-after-read) and is never reclaimed, even if the record is
// later deleted or a side effect fails. CreatedAt is stamped from the
// store clock. After the insert is acknowledged, the persisted row is
// re-read so callers receive the canonical stored shape.
//
// Emits an add event and triggers a backup snapshot. Backup failure is
// logged, never returned: the add has already succeeded.
func (s *Store) Add(ctx context.Context, name, value string) (record.Public, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return record.Public{}, err
	}

	userID := s.counter.Next()
	id := uuid.Must(uuid.NewV7()).String()
	created := s.now().UTC()

	_, err = db.ExecContext(ctx, `
		INSERT INTO records (id, user_id, name, value, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, userID, name, value, created.Format(timeLayout))
	if err != nil {
		return record.Public{}, fmt.Errorf("add record: %w", err)
	}

	rec, err := s.readByInternalID(ctx, id)
	if err != nil {
		return record.Public{}, fmt.Errorf("add record: re-read: %w", err)
	}

	pub := record.ToPublic(rec)
	s.publish(bus.Event{Kind: bus.KindAdd, Record: pub})
	s.triggerSnapshot(ctx)
	return pub, nil
}

// Update replaces the name and value of the record matching id and
// stamps UpdatedAt. CreatedAt and both identifiers are untouched.
//
// A token that matches no record (including an invalid token) returns
// found=false with a nil error; not-found is a result, not a failure.
//
// Emits an update event. Update deliberately does NOT trigger a backup
// snapshot - only add and delete do. See TestUpdate_NoSnapshot, which
// pins this asymmetry.
func (s *Store) Update(ctx context.Context, id record.RecordID, name, value string) (record.Public, bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return record.Public{}, false, err
	}

	existing, found, err := s.findByID(ctx, id)
	if err != nil {
		return record.Public{}, false, err
	}
	if !found {
		return record.Public{}, false, nil
	}

	updated := s.now().UTC()
	_, err = db.ExecContext(ctx, `
		UPDATE records SET name = ?, value = ?, updated_at = ? WHERE id = ?
	`, name, value, updated.Format(timeLayout), existing.ID)
	if err != nil {
		return record.Public{}, false, fmt.Errorf("update record: %w", err)
	}

	rec, err := s.readByInternalID(ctx, existing.ID)
	if err != nil {
		return record.Public{}, false, fmt.Errorf("update record: re-read: %w", err)
	}

	pub := record.ToPublic(rec)
	s.publish(bus.Event{Kind: bus.KindUpdate, Record: pub})
	return pub, true, nil
}

// Delete removes the record matching id permanently. There is no
// tombstone: the row is gone and only backups retain its state.
//
// Returns the record's prior state. A token that matches no record
// returns found=false with a nil error and triggers no side effects.
//
// Emits a delete event and triggers a backup snapshot.
func (s *Store) Delete(ctx context.Context, id record.RecordID) (record.Public, bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return record.Public{}, false, err
	}

	existing, found, err := s.findByID(ctx, id)
	if err != nil {
		return record.Public{}, false, err
	}
	if !found {
		return record.Public{}, false, nil
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, existing.ID); err != nil {
		return record.Public{}, false, fmt.Errorf("delete record: %w", err)
	}

	pub := record.ToPublic(existing)
	s.publish(bus.Event{Kind: bus.KindDelete, Record: pub})
	s.triggerSnapshot(ctx)
	return pub, true, nil
}

// timeLayout is the storage format for timestamps (RFC 3339, UTC).
const timeLayout = time.RFC3339Nano
