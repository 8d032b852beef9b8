package schedule

import (
	"testing"
	"time"

	"github.com/glowdesk/partner-console/internal/api"
	"github.com/glowdesk/partner-console/internal/timeutil"
)

func testConverter() *timeutil.Converter {
	return &timeutil.Converter{
		Location: time.FixedZone("UTC-3", -3*3600),
		Now: func() time.Time {
			return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestMaterialize(t *testing.T) {
	conv := testConverter()
	persisted := []api.AvailabilityDay{
		{Weekday: 1, OpensAt: "12:00", ClosesAt: "21:00", BreakStart: "15:00", BreakEnd: "16:00"},
		{Weekday: 3, OpensAt: "13:00", ClosesAt: "22:00"},
	}

	week := Materialize(persisted, conv)

	if !week[1].Open() {
		t.Fatal("monday should be open")
	}
	if week[1].OpensAt != "09:00" || week[1].ClosesAt != "18:00" {
		t.Errorf("monday window = %s-%s, want 09:00-18:00", week[1].OpensAt, week[1].ClosesAt)
	}
	if week[1].BreakStart != "12:00" || week[1].BreakEnd != "13:00" {
		t.Errorf("monday break = %s-%s, want 12:00-13:00", week[1].BreakStart, week[1].BreakEnd)
	}

	if week[3].HasBreak() {
		t.Error("wednesday should have no break")
	}

	for _, wd := range []int{0, 2, 4, 5, 6} {
		if week[wd].Open() || week[wd].HasBreak() {
			t.Errorf("weekday %d should be closed and empty, got %+v", wd, week[wd])
		}
		if week[wd].Weekday != wd {
			t.Errorf("weekday index mismatch: %+v", week[wd])
		}
	}
}

func TestMaterializeDegradesMalformedTimes(t *testing.T) {
	conv := testConverter()

	// Malformed close collapses the day to closed.
	week := Materialize([]api.AvailabilityDay{{Weekday: 2, OpensAt: "12:00", ClosesAt: "25:99"}}, conv)
	if week[2].Open() {
		t.Errorf("day with malformed close should be closed, got %+v", week[2])
	}

	// Malformed break end clears the break, not the window.
	week = Materialize([]api.AvailabilityDay{{Weekday: 2, OpensAt: "12:00", ClosesAt: "21:00", BreakStart: "15:00", BreakEnd: "garbage"}}, conv)
	if !week[2].Open() {
		t.Fatal("window should survive a malformed break")
	}
	if week[2].BreakStart != "" || week[2].BreakEnd != "" {
		t.Errorf("break should be cleared atomically, got %+v", week[2])
	}
}

func TestToggleDayActive(t *testing.T) {
	var week Week
	for wd := range week {
		week[wd].Weekday = wd
	}

	week.ToggleDayActive(1, true)
	if week[1].OpensAt != DefaultOpensAt || week[1].ClosesAt != DefaultClosesAt {
		t.Errorf("activation should apply defaults, got %+v", week[1])
	}

	// Existing values survive re-activation.
	week[1].OpensAt, week[1].ClosesAt = "10:00", "16:00"
	week.ToggleDayActive(1, true)
	if week[1].OpensAt != "10:00" || week[1].ClosesAt != "16:00" {
		t.Errorf("activation should preserve existing values, got %+v", week[1])
	}

	week.ToggleBreak(1, true)
	week.ToggleDayActive(1, false)
	if week[1].Open() || week[1].HasBreak() {
		t.Errorf("deactivation should clear window and break, got %+v", week[1])
	}

	// Deactivate then activate restores defaults once values are gone.
	week.ToggleDayActive(1, true)
	if week[1].OpensAt != DefaultOpensAt || week[1].ClosesAt != DefaultClosesAt {
		t.Errorf("re-activation should restore defaults, got %+v", week[1])
	}

	week.ToggleDayActive(9, true) // out of range is a no-op
}

func TestToggleBreak(t *testing.T) {
	var week Week
	week.ToggleBreak(4, true)
	if week[4].HasBreak() {
		t.Error("break on a closed day should be refused")
	}

	week.ToggleDayActive(4, true)
	week.ToggleBreak(4, true)
	if week[4].BreakStart != DefaultBreakStart || week[4].BreakEnd != DefaultBreakEnd {
		t.Errorf("break defaults not applied: %+v", week[4])
	}

	week[4].BreakStart, week[4].BreakEnd = "13:00", "14:00"
	week.ToggleBreak(4, true)
	if week[4].BreakStart != "13:00" || week[4].BreakEnd != "14:00" {
		t.Errorf("break values should be preserved, got %+v", week[4])
	}

	week.ToggleBreak(4, false)
	if week[4].BreakStart != "" || week[4].BreakEnd != "" {
		t.Errorf("break should be cleared atomically, got %+v", week[4])
	}
}

func TestBuildSavePayload(t *testing.T) {
	conv := testConverter()

	var week Week
	for wd := range week {
		week[wd].Weekday = wd
	}
	week[1] = Day{Weekday: 1, OpensAt: "09:00", ClosesAt: "18:00", BreakStart: "12:00", BreakEnd: "13:00"}
	week[5] = Day{Weekday: 5, OpensAt: "10:00", ClosesAt: "14:00"}

	payload := BuildSavePayload(week, conv)
	if len(payload) != 2 {
		t.Fatalf("expected 2 open days, got %d: %+v", len(payload), payload)
	}

	if payload[0].Weekday != 1 || payload[0].OpensAt != "12:00" || payload[0].ClosesAt != "21:00" {
		t.Errorf("monday payload = %+v", payload[0])
	}
	if payload[0].BreakStart != "15:00" || payload[0].BreakEnd != "16:00" {
		t.Errorf("monday break payload = %+v", payload[0])
	}

	if payload[1].Weekday != 5 || payload[1].OpensAt != "13:00" {
		t.Errorf("friday payload = %+v", payload[1])
	}
	if payload[1].BreakStart != "" || payload[1].BreakEnd != "" {
		t.Errorf("friday should carry no break fields, got %+v", payload[1])
	}
}
