// Package store provides the SQLite-backed record store.
//
// The store owns the single shared connection (lazily established on
// first use and reused for the process lifetime), the sequential UserID
// counter (seeded from MAX(user_id)+1 at connect time), and all CRUD
// against the records table. Every record leaving the store is
// normalized via record.ToPublic.
//
// Mutations drive two side effects:
//   - an event published on the configured bus (add/update/delete)
//   - a full-set snapshot via the configured Snapshotter (add and
//     delete only; update deliberately does not snapshot)
//
// Side-effect failures are logged and never propagated: the success of
// a mutation is independent of the success of its backup or log write.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
