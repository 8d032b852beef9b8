package blocking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/partner-console/internal/api"
	"github.com/glowdesk/partner-console/internal/api/apitest"
	"github.com/glowdesk/partner-console/internal/forms"
	"github.com/glowdesk/partner-console/internal/timeutil"
)

type testTokens struct{}

func (testTokens) Token() string { return "tok_test" }

func testConverter() *timeutil.Converter {
	return &timeutil.Converter{
		Location: time.FixedZone("UTC-3", -3*3600),
		Now: func() time.Time {
			return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		},
	}
}

func newTestService(t *testing.T) (*Service, *apitest.Server) {
	t.Helper()
	backend := apitest.NewServer()
	t.Cleanup(backend.Close)
	client := api.New(backend.URL(), 0, testTokens{}, nil, nil)
	return NewService(client, testConverter(), nil), backend
}

func TestCreateBlockRejections(t *testing.T) {
	svc, _ := newTestService(t)
	loc := testConverter().Location
	starts := time.Date(2026, 4, 3, 9, 0, 0, 0, loc)

	tests := []struct {
		name string
		in   BlockInput
	}{
		{"end before start", BlockInput{StartsAt: starts, EndsAt: starts.Add(-time.Hour), Reason: "dentist"}},
		{"end equals start", BlockInput{StartsAt: starts, EndsAt: starts, Reason: "dentist"}},
		{"short reason", BlockInput{StartsAt: starts, EndsAt: starts.Add(time.Hour), Reason: "no"}},
		{"empty reason", BlockInput{StartsAt: starts, EndsAt: starts.Add(time.Hour)}},
		{"missing start", BlockInput{EndsAt: starts.Add(time.Hour), Reason: "dentist"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBlock(context.Background(), "emp_1", tt.in)
			require.Error(t, err)
		})
	}
}

func TestCreateRecurringBlockRejections(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		in   RecurringBlockInput
	}{
		{"end before start", RecurringBlockInput{Weekday: 1, StartTime: "14:00", EndTime: "13:00", Reason: "class"}},
		{"end equals start", RecurringBlockInput{Weekday: 1, StartTime: "13:00", EndTime: "13:00", Reason: "class"}},
		{"bad start time", RecurringBlockInput{Weekday: 1, StartTime: "1pm", EndTime: "14:00", Reason: "class"}},
		{"short reason", RecurringBlockInput{Weekday: 1, StartTime: "13:00", EndTime: "14:00", Reason: "cl"}},
		{"weekday out of range", RecurringBlockInput{Weekday: 7, StartTime: "13:00", EndTime: "14:00", Reason: "class"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRecurringBlock(context.Background(), "emp_1", tt.in)
			require.Error(t, err)
		})
	}
}

func TestShortReasonIsFieldScoped(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateRecurringBlock(context.Background(), "emp_1", RecurringBlockInput{
		Weekday: 1, StartTime: "13:00", EndTime: "14:00", Reason: "no",
	})
	var fieldErrs forms.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "reason", fieldErrs[0].Field)
}

func TestBlockLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	loc := testConverter().Location
	starts := time.Date(2026, 4, 3, 9, 0, 0, 0, loc)
	ends := starts.Add(3 * time.Hour)

	created, err := svc.CreateBlock(context.Background(), "emp_1", BlockInput{
		StartsAt: starts, EndsAt: ends, Reason: "medical leave",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// Read-back is in local time and the same absolute instant.
	assert.True(t, created.StartsAt.Equal(starts))
	assert.Equal(t, 9, created.StartsAt.Hour())

	blocks, err := svc.ListBlocks(context.Background(), "emp_1")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "medical leave", blocks[0].Reason)
	assert.Equal(t, 9, blocks[0].StartsAt.Hour())

	// Another employee sees nothing.
	other, err := svc.ListBlocks(context.Background(), "emp_2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, svc.DeleteBlock(context.Background(), created.ID))

	// Deleting again is fine: the record is gone either way.
	require.NoError(t, svc.DeleteBlock(context.Background(), created.ID))

	blocks, err = svc.ListBlocks(context.Background(), "emp_1")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestRecurringBlockLifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateRecurringBlock(context.Background(), "emp_1", RecurringBlockInput{
		Weekday: 2, StartTime: "12:00", EndTime: "13:30", Reason: "lunch course",
	})
	require.NoError(t, err)

	// Wire format is UTC; read-back is local again.
	assert.Equal(t, "12:00", created.StartTime)
	assert.Equal(t, "13:30", created.EndTime)
	assert.Equal(t, 2, created.Weekday)

	listed, err := svc.ListRecurringBlocks(context.Background(), "emp_1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "12:00", listed[0].StartTime)

	require.NoError(t, svc.DeleteRecurringBlock(context.Background(), created.ID))
	require.NoError(t, svc.DeleteRecurringBlock(context.Background(), created.ID))

	listed, err = svc.ListRecurringBlocks(context.Background(), "emp_1")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDeleteSurfacesServerErrors(t *testing.T) {
	backend := apitest.NewServer()
	backend.Close() // force transport errors

	client := api.New(backend.URL(), 0, testTokens{}, nil, nil)
	svc := NewService(client, testConverter(), nil)

	err := svc.DeleteBlock(context.Background(), "blk_1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, api.ErrNotFound))
}
