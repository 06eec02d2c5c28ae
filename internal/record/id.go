package record

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDKind tags the resolved scheme of a lookup token.
type IDKind int

const (
	// IDInvalid marks a token that matches no record (empty or malformed).
	IDInvalid IDKind = iota

	// IDNumeric marks a token resolved as a public UserID.
	IDNumeric

	// IDOpaque marks a token resolved as a store-native internal id.
	IDOpaque
)

// RecordID is a lookup token resolved once at the boundary.
//
// Exactly one of UserID or InternalID is meaningful, selected by Kind.
// An IDInvalid RecordID is a valid value: lookups dispatch on it and
// match nothing rather than erroring.
type RecordID struct {
	Kind       IDKind
	UserID     int64
	InternalID string
}

// ParseID resolves a raw lookup token into a tagged RecordID.
//
// Resolution rule:
//  1. A purely numeric token is a UserID and matches by UserID exactly.
//  2. Anything else must parse as a UUID (the store-native id format)
//     and matches by internal id.
//  3. Empty or malformed tokens resolve to IDInvalid.
//
// ParseID never returns an error; malformed input is representable.
func ParseID(token string) RecordID {
	token = strings.TrimSpace(token)
	if token == "" {
		return RecordID{Kind: IDInvalid}
	}

	if isDigits(token) {
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			// Digits but out of int64 range - cannot match any UserID.
			return RecordID{Kind: IDInvalid}
		}
		return RecordID{Kind: IDNumeric, UserID: n}
	}

	id, err := uuid.Parse(token)
	if err != nil {
		return RecordID{Kind: IDInvalid}
	}
	return RecordID{Kind: IDOpaque, InternalID: id.String()}
}

// isDigits reports whether s consists solely of ASCII digits.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
