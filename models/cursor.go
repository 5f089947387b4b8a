package models

import "encoding/base64"

// Cursor is an opaque continuation token issued by the change feed.
// A nil Cursor asks the feed for the whole history.
type Cursor []byte

// IsZero reports whether c is the null cursor.
func (c Cursor) IsZero() bool {
	return len(c) == 0
}

// String encodes c for transport in a query string.
func (c Cursor) String() string {
	if c.IsZero() {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(c)
}

// ParseCursor decodes a cursor previously produced by Cursor.String.
func ParseCursor(s string) (Cursor, error) {
	if s == "" {
		return nil, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Cursor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cursor) UnmarshalText(text []byte) error {
	parsed, err := ParseCursor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
