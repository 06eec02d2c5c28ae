package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID_Numeric(t *testing.T) {
	id := ParseID("42")
	assert.Equal(t, IDNumeric, id.Kind)
	assert.Equal(t, int64(42), id.UserID)
}

func TestParseID_NumericWithWhitespace(t *testing.T) {
	id := ParseID("  7\n")
	assert.Equal(t, IDNumeric, id.Kind)
	assert.Equal(t, int64(7), id.UserID)
}

func TestParseID_Opaque(t *testing.T) {
	id := ParseID("018f4e2a-1111-7abc-8def-0123456789ab")
	assert.Equal(t, IDOpaque, id.Kind)
	assert.Equal(t, "018f4e2a-1111-7abc-8def-0123456789ab", id.InternalID)
}

func TestParseID_OpaqueCanonicalized(t *testing.T) {
	// Uppercase UUIDs parse but are stored lowercase, so the resolved
	// token must be canonical to match the id column.
	id := ParseID("018F4E2A-1111-7ABC-8DEF-0123456789AB")
	assert.Equal(t, IDOpaque, id.Kind)
	assert.Equal(t, "018f4e2a-1111-7abc-8def-0123456789ab", id.InternalID)
}

func TestParseID_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"not a uuid", "banana"},
		{"signed number", "-3"},
		{"mixed", "12ab"},
		{"digits overflowing int64", "99999999999999999999999"},
		{"truncated uuid", "018f4e2a-1111-7abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := ParseID(tc.token)
			assert.Equal(t, IDInvalid, id.Kind)
		})
	}
}
