// Package record defines the Record entity, its normalized public
// projection, and boundary parsing for the two identifier schemes.
//
// A record has two identifiers:
//   - InternalID: the store-native opaque id (a UUID), assigned at insert
//     and never exposed for arithmetic - only for exact lookup.
//   - UserID: the sequential public id, allocated from a process-owned
//     counter seeded from the store at connect time.
//
// Lookup tokens are parsed exactly once at the boundary into a tagged
// RecordID (numeric, opaque, or invalid) and dispatched explicitly from
// there. Invalid tokens match nothing; they never produce an error.
package record
