package api

import "time"

// AvailabilityDay is one weekday row of the establishment schedule as it
// travels on the wire. Times are UTC HH:MM strings; break fields are omitted
// when the day has no break.
type AvailabilityDay struct {
	Weekday    int    `json:"weekday"`
	OpensAt    string `json:"opensAt"`
	ClosesAt   string `json:"closesAt"`
	BreakStart string `json:"breakStart,omitempty"`
	BreakEnd   string `json:"breakEnd,omitempty"`
}

type saveAvailabilityRequest struct {
	Availability []AvailabilityDay `json:"availability"`
}

// Block is a one-off unavailability window for an employee. Instants are UTC.
type Block struct {
	ID       string    `json:"id"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Reason   string    `json:"reason"`
}

// CreateBlockRequest is the body for creating a one-off block.
type CreateBlockRequest struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Reason   string    `json:"reason"`
}

// RecurringBlock is a weekly-repeating unavailability window. Times are UTC
// HH:MM strings.
type RecurringBlock struct {
	ID        string `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason"`
}

// CreateRecurringBlockRequest is the body for creating a recurring block.
type CreateRecurringBlockRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason"`
}

// BonusStatus is the loyalty snapshot for a (customer, service) pair.
type BonusStatus struct {
	HasBonus      bool `json:"hasBonus"`
	CurrentPoints int  `json:"currentPoints"`
}

// CompleteAppointmentRequest closes out an appointment at check-in.
// PaymentAmount is in cents.
type CompleteAppointmentRequest struct {
	Status        string `json:"status"`
	PaymentType   string `json:"paymentType"`
	PaymentAmount int64  `json:"paymentAmount"`
	Notes         string `json:"notes"`
}
