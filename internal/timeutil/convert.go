// Package timeutil converts schedule times between the device's local
// wall-clock and the UTC wire format.
//
// Conversion of bare HH:MM values anchors on the current date, so the UTC
// offset in effect right now is applied. A schedule saved under one
// daylight-saving regime and read back under another shifts by the offset
// difference. Known limitation, kept intentionally.
package timeutil

import "time"

const clockLayout = "15:04"

// Converter translates times between a local zone and UTC.
// The zero value uses the system zone and wall clock.
type Converter struct {
	// Location is the local zone. Nil means time.Local.
	Location *time.Location
	// Now supplies the reference date for HH:MM anchoring. Nil means time.Now.
	Now func() time.Time
}

// Default returns a converter for the system zone.
func Default() *Converter {
	return &Converter{}
}

// LocalTimeToUTC converts a local HH:MM wall-clock value to its UTC HH:MM.
// Empty input maps to empty output; a malformed value degrades to "".
func (c *Converter) LocalTimeToUTC(hhmm string) string {
	clock, ok := parseClock(hhmm)
	if !ok {
		return ""
	}
	ref := c.now().In(c.location())
	local := time.Date(ref.Year(), ref.Month(), ref.Day(), clock.Hour(), clock.Minute(), 0, 0, c.location())
	return local.In(time.UTC).Format(clockLayout)
}

// UTCTimeToLocal converts a UTC HH:MM value to the local wall-clock HH:MM.
// Empty input maps to empty output; a malformed value degrades to "".
func (c *Converter) UTCTimeToLocal(hhmm string) string {
	clock, ok := parseClock(hhmm)
	if !ok {
		return ""
	}
	ref := c.now().In(time.UTC)
	utc := time.Date(ref.Year(), ref.Month(), ref.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	return utc.In(c.location()).Format(clockLayout)
}

// LocalInstantToUTC returns the instant expressed in UTC.
func (c *Converter) LocalInstantToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(time.UTC)
}

// UTCInstantToLocal returns the instant expressed in the local zone.
func (c *Converter) UTCInstantToLocal(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(c.location())
}

// ValidClock reports whether s is a well-formed HH:MM value.
func ValidClock(s string) bool {
	_, ok := parseClock(s)
	return ok
}

func parseClock(s string) (time.Time, bool) {
	// time.Parse is lenient about missing leading zeros; the wire format is
	// strictly two-digit HH:MM.
	if len(s) != 5 || s[2] != ':' {
		return time.Time{}, false
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (c *Converter) location() *time.Location {
	if c == nil || c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c *Converter) now() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
