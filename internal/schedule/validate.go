package schedule

import (
	"errors"
	"fmt"

	"github.com/glowdesk/partner-console/internal/forms"
)

// The UI toggles keep these invariants by construction; Validate is the
// safety net run before every save.
var (
	ErrHalfOpenWindow = errors.New("schedule: open and close must be set together")
	ErrInvalidWindow  = errors.New("schedule: open time must be before close time")
	ErrHalfSetBreak   = errors.New("schedule: break start and end must be set together")
	ErrBreakOutside   = errors.New("schedule: break must fit inside the open window")
)

// Validate checks every day of the week against the availability invariants.
func Validate(week Week) error {
	for _, d := range week {
		if err := validateDay(d); err != nil {
			return fmt.Errorf("weekday %d: %w", d.Weekday, err)
		}
	}
	return nil
}

func validateDay(d Day) error {
	if err := forms.Validate(d); err != nil {
		return err
	}

	if (d.OpensAt == "") != (d.ClosesAt == "") {
		return ErrHalfOpenWindow
	}
	if (d.BreakStart == "") != (d.BreakEnd == "") {
		return ErrHalfSetBreak
	}
	if !d.Open() {
		if d.HasBreak() {
			return ErrBreakOutside
		}
		return nil
	}

	// Zero-padded HH:MM strings order lexicographically.
	if d.OpensAt >= d.ClosesAt {
		return ErrInvalidWindow
	}
	if d.HasBreak() {
		if d.BreakStart >= d.BreakEnd {
			return ErrBreakOutside
		}
		if d.BreakStart < d.OpensAt || d.BreakEnd > d.ClosesAt {
			return ErrBreakOutside
		}
	}
	return nil
}
