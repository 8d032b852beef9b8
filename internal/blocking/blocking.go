// Package blocking manages staff unavailability: one-off date-range blocks
// and weekly recurring time-range blocks. Records are edited in local time
// and stored by the backend in UTC.
package blocking

import (
	"errors"
	"time"
)

// Block is a one-off unavailability window, in local time for display.
type Block struct {
	ID       string
	StartsAt time.Time
	EndsAt   time.Time
	Reason   string
}

// RecurringBlock is a weekly-repeating unavailability window, local HH:MM.
type RecurringBlock struct {
	ID        string
	Weekday   int
	StartTime string
	EndTime   string
	Reason    string
}

// BlockInput is the one-off block creation form.
type BlockInput struct {
	StartsAt time.Time `validate:"required"`
	EndsAt   time.Time `validate:"required"`
	Reason   string    `validate:"required,min=3"`
}

// RecurringBlockInput is the recurring block creation form.
type RecurringBlockInput struct {
	Weekday   int    `validate:"gte=0,lte=6"`
	StartTime string `validate:"required,hhmm"`
	EndTime   string `validate:"required,hhmm"`
	Reason    string `validate:"required,min=3"`
}

// ErrInvalidRange reports a block whose start does not precede its end.
var ErrInvalidRange = errors.New("blocking: start must be before end")
