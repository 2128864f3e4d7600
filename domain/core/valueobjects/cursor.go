package valueobjects

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Cursor is the opaque feed pagination token. It identifies the last item a
// page returned by its (createdAt, id) pair, which is unique per item and
// stable under concurrent inserts: resuming after it never skips or
// duplicates items as long as items are not edited in place.
type Cursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// IsZero reports whether the cursor is unset
func (c Cursor) IsZero() bool {
	return c.ID == "" && c.CreatedAt.IsZero()
}

// Encode serializes the cursor into its opaque wire form
func (c Cursor) Encode() string {
	if c.IsZero() {
		return ""
	}
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque cursor token. Empty input yields the zero
// cursor (first page).
func DecodeCursor(token string) (Cursor, bool) {
	if token == "" {
		return Cursor{}, true
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, false
	}

	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.ID == "" {
		return Cursor{}, false
	}
	return c, true
}
