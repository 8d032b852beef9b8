// Package schedule models the establishment's weekly availability: per-weekday
// open/close windows with an optional lunch break, edited locally in the
// device's wall clock and persisted to the backend in UTC.
package schedule

import (
	"github.com/glowdesk/partner-console/internal/api"
	"github.com/glowdesk/partner-console/internal/timeutil"
)

// Defaults applied when a day or break is activated with no prior values.
const (
	DefaultOpensAt    = "09:00"
	DefaultClosesAt   = "18:00"
	DefaultBreakStart = "12:00"
	DefaultBreakEnd   = "13:00"
)

// Day is one weekday row of the editable schedule. All times are local
// wall-clock HH:MM strings; empty open/close means the day is closed.
type Day struct {
	Weekday    int    `json:"weekday" validate:"gte=0,lte=6"`
	OpensAt    string `json:"opensAt" validate:"omitempty,hhmm"`
	ClosesAt   string `json:"closesAt" validate:"omitempty,hhmm"`
	BreakStart string `json:"breakStart" validate:"omitempty,hhmm"`
	BreakEnd   string `json:"breakEnd" validate:"omitempty,hhmm"`
}

// Open reports whether the day has a working window.
func (d Day) Open() bool {
	return d.OpensAt != "" && d.ClosesAt != ""
}

// HasBreak reports whether the day has a lunch break.
func (d Day) HasBreak() bool {
	return d.BreakStart != "" && d.BreakEnd != ""
}

// Week is the full editable schedule, indexed by weekday (0 = Sunday).
type Week [7]Day

// Materialize builds the editable week from the sparse persisted list,
// converting UTC times to local. Missing weekdays become closed rows; a
// malformed persisted time degrades to an unset field, and a day left
// without a full open/close pair collapses to closed.
func Materialize(persisted []api.AvailabilityDay, conv *timeutil.Converter) Week {
	var week Week
	for wd := 0; wd < 7; wd++ {
		day := Day{Weekday: wd}
		for _, p := range persisted {
			if p.Weekday != wd {
				continue
			}
			day.OpensAt = conv.UTCTimeToLocal(p.OpensAt)
			day.ClosesAt = conv.UTCTimeToLocal(p.ClosesAt)
			day.BreakStart = conv.UTCTimeToLocal(p.BreakStart)
			day.BreakEnd = conv.UTCTimeToLocal(p.BreakEnd)
			break
		}
		if !day.Open() {
			day = Day{Weekday: wd}
		}
		if !day.HasBreak() {
			day.BreakStart, day.BreakEnd = "", ""
		}
		week[wd] = day
	}
	return week
}

// ToggleDayActive opens or closes a weekday. Activating fills the default
// window only when no prior values exist; deactivating clears the window and
// the break together.
func (w *Week) ToggleDayActive(day int, active bool) {
	if day < 0 || day > 6 {
		return
	}
	d := &w[day]
	if active {
		if d.OpensAt == "" {
			d.OpensAt = DefaultOpensAt
		}
		if d.ClosesAt == "" {
			d.ClosesAt = DefaultClosesAt
		}
		return
	}
	d.OpensAt, d.ClosesAt = "", ""
	d.BreakStart, d.BreakEnd = "", ""
}

// ToggleBreak adds or removes the lunch break on a weekday. A break can only
// exist on an open day; clearing always clears both fields.
func (w *Week) ToggleBreak(day int, active bool) {
	if day < 0 || day > 6 {
		return
	}
	d := &w[day]
	if active {
		if !d.Open() {
			return
		}
		if d.BreakStart == "" {
			d.BreakStart = DefaultBreakStart
		}
		if d.BreakEnd == "" {
			d.BreakEnd = DefaultBreakEnd
		}
		return
	}
	d.BreakStart, d.BreakEnd = "", ""
}

// BuildSavePayload converts the editable week to the wire format: only open
// days are kept, every time field becomes UTC, and unset breaks are omitted
// rather than sent as empty strings.
func BuildSavePayload(week Week, conv *timeutil.Converter) []api.AvailabilityDay {
	out := make([]api.AvailabilityDay, 0, len(week))
	for _, d := range week {
		if !d.Open() {
			continue
		}
		row := api.AvailabilityDay{
			Weekday:  d.Weekday,
			OpensAt:  conv.LocalTimeToUTC(d.OpensAt),
			ClosesAt: conv.LocalTimeToUTC(d.ClosesAt),
		}
		if d.HasBreak() {
			row.BreakStart = conv.LocalTimeToUTC(d.BreakStart)
			row.BreakEnd = conv.LocalTimeToUTC(d.BreakEnd)
		}
		out = append(out, row)
	}
	return out
}
