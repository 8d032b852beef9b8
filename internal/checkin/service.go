package checkin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/glowdesk/partner-console/internal/api"
	"github.com/glowdesk/partner-console/pkg/logging"
)

var checkinTracer = otel.Tracer("console.internal.checkin")

// StatusCompleted is the appointment status set by a successful check-in.
const StatusCompleted = "completed"

var (
	ErrMissingPaymentType    = errors.New("checkin: payment type required")
	ErrPaymentTypeNotAllowed = errors.New("checkin: payment type not allowed")
	ErrInvalidAmount         = errors.New("checkin: payment amount required")
	ErrSubmitInFlight        = errors.New("checkin: submission already in progress")
)

// Form is the editable payment form backing the check-in dialog.
type Form struct {
	Type        PaymentType
	AmountCents int64
	Notes       string
}

// NewForm pre-fills a form from a decision.
func NewForm(d Decision) *Form {
	return &Form{Type: d.Type, AmountCents: d.AmountCents, Notes: d.Notes}
}

// Validate checks the form against the decision before any network call.
// Zero amounts are only legal when the decision itself resolves to zero
// (paid package, loyalty redemption).
func (f *Form) Validate(d Decision) error {
	if f.Type == "" {
		return ErrMissingPaymentType
	}
	if !d.Allows(f.Type) {
		return ErrPaymentTypeNotAllowed
	}
	if f.AmountCents < 0 {
		return ErrInvalidAmount
	}
	if f.AmountCents == 0 && f.Type != PaymentPackage && f.Type != PaymentLoyalty {
		return ErrInvalidAmount
	}
	return nil
}

// Service performs the network side of check-in. It keeps a per-appointment
// in-flight flag so a double tap cannot duplicate a submission; there is no
// server-side idempotency key to fall back on.
type Service struct {
	api    *api.Client
	logger *logging.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService constructs a check-in service.
func NewService(client *api.Client, logger *logging.Logger) *Service {
	if client == nil {
		panic("checkin: api client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		api:      client,
		logger:   logger.Component("checkin"),
		inFlight: make(map[string]struct{}),
	}
}

func (s *Service) beginSubmit(appointmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[appointmentID]; busy {
		return false
	}
	s.inFlight[appointmentID] = struct{}{}
	return true
}

func (s *Service) endSubmit(appointmentID string) {
	s.mu.Lock()
	delete(s.inFlight, appointmentID)
	s.mu.Unlock()
}

// FetchBonus loads the loyalty snapshot for a customer/service pair.
func (s *Service) FetchBonus(ctx context.Context, customerID, serviceID string) (Bonus, error) {
	ctx, span := checkinTracer.Start(ctx, "checkin.fetch_bonus")
	defer span.End()

	status, err := s.api.CheckBonus(ctx, customerID, serviceID)
	if err != nil {
		span.RecordError(err)
		return Bonus{}, fmt.Errorf("checkin: fetch bonus: %w", err)
	}
	return Bonus{HasBonus: status.HasBonus, CurrentPoints: status.CurrentPoints}, nil
}

// Submit validates the form and completes the appointment. While one
// submission is outstanding a second one is refused; on failure the form is
// left untouched so the dialog can stay open with its current values.
func (s *Service) Submit(ctx context.Context, appointmentID string, d Decision, f *Form) error {
	ctx, span := checkinTracer.Start(ctx, "checkin.submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("console.appointment_id", appointmentID),
		attribute.String("console.payment_type", string(f.Type)),
	)

	if err := f.Validate(d); err != nil {
		return err
	}
	if !s.beginSubmit(appointmentID) {
		return ErrSubmitInFlight
	}
	defer s.endSubmit(appointmentID)

	err := s.api.CompleteAppointment(ctx, appointmentID, api.CompleteAppointmentRequest{
		Status:        StatusCompleted,
		PaymentType:   string(f.Type),
		PaymentAmount: f.AmountCents,
		Notes:         f.Notes,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("checkin: submit: %w", err)
	}

	s.logger.Info("check-in submitted",
		"appointment_id", appointmentID,
		"payment_type", f.Type,
		"amount_cents", f.AmountCents,
	)
	return nil
}
