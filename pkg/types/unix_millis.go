package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// UnixMillis is a timestamp carried as epoch milliseconds on the wire.
// Decoding also accepts RFC 3339 strings, the form older snapshots were written in.
type UnixMillis struct {
	time.Time
}

// NewUnixMillis truncates t to millisecond precision so values survive a round trip.
func NewUnixMillis(t time.Time) UnixMillis {
	return UnixMillis{Time: t.UTC().Truncate(time.Millisecond)}
}

// FromMillis builds a UnixMillis from an epoch-millisecond count.
func FromMillis(ms int64) UnixMillis {
	return UnixMillis{Time: time.UnixMilli(ms).UTC()}
}

// Millis returns the epoch-millisecond count; the zero time encodes as 0.
func (u UnixMillis) Millis() int64 {
	if u.IsZero() {
		return 0
	}
	return u.UnixMilli()
}

// MarshalJSON implements json.Marshaler.
func (u UnixMillis) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Millis())
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *UnixMillis) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		u.Time = time.Time{}
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("unix millis: parse %q: %w", raw, err)
		}
		*u = NewUnixMillis(parsed)
		return nil
	}

	var ms int64
	if err := json.Unmarshal(trimmed, &ms); err != nil {
		return fmt.Errorf("unix millis: %w", err)
	}
	if ms == 0 {
		u.Time = time.Time{}
		return nil
	}
	*u = FromMillis(ms)
	return nil
}
