package record

import "time"

// Record is the stored shape of a single entry.
//
// CreatedAt is stamped exactly once at insert and never changes.
// UpdatedAt is nil until the first successful update.
type Record struct {
	ID        string     // store-native opaque id (UUID)
	UserID    int64      // sequential public id, unique, never reused
	Name      string     // free text, mutable
	Value     string     // free text, mutable
	CreatedAt time.Time  // immutable after insert
	UpdatedAt *time.Time // nil until first update
}

// Public is the normalized projection returned to callers and carried on
// events. Renderings degrade to the empty string (or nil) when the source
// field is missing or zero; normalization never fails.
type Public struct {
	InternalID string     `json:"internalId"`
	UserID     int64      `json:"userID"`
	Name       string     `json:"name"`
	Value      string     `json:"value"`
	Created    string     `json:"created,omitempty"` // date-only rendering of CreatedAt
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	Updated    string     `json:"updated,omitempty"` // seconds-precision rendering of UpdatedAt
}

// ToPublic converts a stored record into its normalized public shape.
func ToPublic(r Record) Public {
	p := Public{
		InternalID: r.ID,
		UserID:     r.UserID,
		Name:       r.Name,
		Value:      r.Value,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}

	if !r.CreatedAt.IsZero() {
		p.Created = r.CreatedAt.UTC().Format("2006-01-02")
	}
	if r.UpdatedAt != nil && !r.UpdatedAt.IsZero() {
		p.Updated = r.UpdatedAt.UTC().Format("2006-01-02 15:04:05")
	}

	return p
}

// ToPublicAll converts a slice of stored records.
// Returns an empty slice (not nil) for empty input.
func ToPublicAll(recs []Record) []Public {
	out := make([]Public, 0, len(recs))
	for _, r := range recs {
		out = append(out, ToPublic(r))
	}
	return out
}
