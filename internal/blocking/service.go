package blocking

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/glowdesk/partner-console/internal/api"
	"github.com/glowdesk/partner-console/internal/forms"
	"github.com/glowdesk/partner-console/internal/timeutil"
	"github.com/glowdesk/partner-console/pkg/logging"
)

var blockingTracer = otel.Tracer("console.internal.blocking")

// Service manages staff blocks through the console API.
type Service struct {
	api    *api.Client
	conv   *timeutil.Converter
	logger *logging.Logger
}

// NewService constructs a blocking service.
func NewService(client *api.Client, conv *timeutil.Converter, logger *logging.Logger) *Service {
	if client == nil {
		panic("blocking: api client required")
	}
	if conv == nil {
		conv = timeutil.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: client, conv: conv, logger: logger.Component("blocking")}
}

// CreateBlock validates and creates a one-off block for an employee. The
// returned record is converted to local time for display.
func (s *Service) CreateBlock(ctx context.Context, employeeID string, in BlockInput) (*Block, error) {
	ctx, span := blockingTracer.Start(ctx, "blocking.create")
	defer span.End()
	span.SetAttributes(attribute.String("console.employee_id", employeeID))

	if err := forms.Validate(in); err != nil {
		return nil, err
	}
	if !in.StartsAt.Before(in.EndsAt) {
		return nil, ErrInvalidRange
	}

	created, err := s.api.CreateBlock(ctx, employeeID, api.CreateBlockRequest{
		StartsAt: s.conv.LocalInstantToUTC(in.StartsAt),
		EndsAt:   s.conv.LocalInstantToUTC(in.EndsAt),
		Reason:   in.Reason,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("blocking: create block: %w", err)
	}
	s.logger.Info("block created", "employee_id", employeeID, "block_id", created.ID)
	return s.toLocal(*created), nil
}

// CreateRecurringBlock validates and creates a weekly recurring block.
func (s *Service) CreateRecurringBlock(ctx context.Context, employeeID string, in RecurringBlockInput) (*RecurringBlock, error) {
	ctx, span := blockingTracer.Start(ctx, "blocking.create_recurring")
	defer span.End()
	span.SetAttributes(attribute.String("console.employee_id", employeeID))

	if err := forms.Validate(in); err != nil {
		return nil, err
	}
	if in.StartTime >= in.EndTime {
		return nil, ErrInvalidRange
	}

	created, err := s.api.CreateRecurringBlock(ctx, employeeID, api.CreateRecurringBlockRequest{
		Weekday:   in.Weekday,
		StartTime: s.conv.LocalTimeToUTC(in.StartTime),
		EndTime:   s.conv.LocalTimeToUTC(in.EndTime),
		Reason:    in.Reason,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("blocking: create recurring block: %w", err)
	}
	s.logger.Info("recurring block created", "employee_id", employeeID, "block_id", created.ID)
	return s.recurringToLocal(*created), nil
}

// ListBlocks returns an employee's one-off blocks in local time.
func (s *Service) ListBlocks(ctx context.Context, employeeID string) ([]Block, error) {
	ctx, span := blockingTracer.Start(ctx, "blocking.list")
	defer span.End()

	records, err := s.api.ListBlocks(ctx, employeeID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("blocking: list blocks: %w", err)
	}
	out := make([]Block, 0, len(records))
	for _, r := range records {
		out = append(out, *s.toLocal(r))
	}
	return out, nil
}

// ListRecurringBlocks returns an employee's recurring blocks in local time.
func (s *Service) ListRecurringBlocks(ctx context.Context, employeeID string) ([]RecurringBlock, error) {
	ctx, span := blockingTracer.Start(ctx, "blocking.list_recurring")
	defer span.End()

	records, err := s.api.ListRecurringBlocks(ctx, employeeID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("blocking: list recurring blocks: %w", err)
	}
	out := make([]RecurringBlock, 0, len(records))
	for _, r := range records {
		out = append(out, *s.recurringToLocal(r))
	}
	return out, nil
}

// DeleteBlock removes a one-off block. A block already gone counts as
// deleted; the next list fetch won't contain it either way.
func (s *Service) DeleteBlock(ctx context.Context, blockID string) error {
	ctx, span := blockingTracer.Start(ctx, "blocking.delete")
	defer span.End()

	err := s.api.DeleteBlock(ctx, blockID)
	if errors.Is(err, api.ErrNotFound) {
		s.logger.Warn("block already gone", "block_id", blockID)
		return nil
	}
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("blocking: delete block: %w", err)
	}
	s.logger.Info("block deleted", "block_id", blockID)
	return nil
}

// DeleteRecurringBlock removes a recurring block, treating not-found as done.
func (s *Service) DeleteRecurringBlock(ctx context.Context, recurringBlockID string) error {
	ctx, span := blockingTracer.Start(ctx, "blocking.delete_recurring")
	defer span.End()

	err := s.api.DeleteRecurringBlock(ctx, recurringBlockID)
	if errors.Is(err, api.ErrNotFound) {
		s.logger.Warn("recurring block already gone", "block_id", recurringBlockID)
		return nil
	}
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("blocking: delete recurring block: %w", err)
	}
	s.logger.Info("recurring block deleted", "block_id", recurringBlockID)
	return nil
}

func (s *Service) toLocal(r api.Block) *Block {
	return &Block{
		ID:       r.ID,
		StartsAt: s.conv.UTCInstantToLocal(r.StartsAt),
		EndsAt:   s.conv.UTCInstantToLocal(r.EndsAt),
		Reason:   r.Reason,
	}
}

func (s *Service) recurringToLocal(r api.RecurringBlock) *RecurringBlock {
	return &RecurringBlock{
		ID:        r.ID,
		Weekday:   r.Weekday,
		StartTime: s.conv.UTCTimeToLocal(r.StartTime),
		EndTime:   s.conv.UTCTimeToLocal(r.EndTime),
		Reason:    r.Reason,
	}
}
