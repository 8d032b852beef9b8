package schedule

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/glowdesk/partner-console/internal/api"
	"github.com/glowdesk/partner-console/internal/timeutil"
	"github.com/glowdesk/partner-console/pkg/logging"
)

var scheduleTracer = otel.Tracer("console.internal.schedule")

// Service loads and saves the establishment schedule through the console API.
type Service struct {
	api    *api.Client
	conv   *timeutil.Converter
	logger *logging.Logger
}

// NewService constructs a schedule service.
func NewService(client *api.Client, conv *timeutil.Converter, logger *logging.Logger) *Service {
	if client == nil {
		panic("schedule: api client required")
	}
	if conv == nil {
		conv = timeutil.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: client, conv: conv, logger: logger.Component("schedule")}
}

// Fetch returns the editable week materialized from the persisted schedule.
func (s *Service) Fetch(ctx context.Context) (Week, error) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.fetch")
	defer span.End()

	persisted, err := s.api.GetAvailability(ctx)
	if err != nil {
		span.RecordError(err)
		return Week{}, fmt.Errorf("schedule: fetch availability: %w", err)
	}
	return Materialize(persisted, s.conv), nil
}

// Save validates the week and replaces the persisted schedule wholesale.
func (s *Service) Save(ctx context.Context, week Week) error {
	ctx, span := scheduleTracer.Start(ctx, "schedule.save")
	defer span.End()

	if err := Validate(week); err != nil {
		return err
	}

	payload := BuildSavePayload(week, s.conv)
	span.SetAttributes(attribute.Int("console.open_days", len(payload)))

	if err := s.api.SaveAvailability(ctx, payload); err != nil {
		span.RecordError(err)
		return fmt.Errorf("schedule: save availability: %w", err)
	}
	s.logger.Info("availability saved", "open_days", len(payload))
	return nil
}
