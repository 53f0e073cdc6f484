package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// d parses a test date, failing the test on malformed literals.
func d(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := calendar.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return parsed
}

// baseParams returns defaults over a one-year 2025 horizon.
func baseParams(t *testing.T) entities.PlanningParameters {
	t.Helper()
	p := entities.DefaultParameters()
	p.PeriodStart = d(t, "2025-01-01")
	p.PeriodEnd = d(t, "2025-12-31")
	p.StartCutoff = d(t, "2025-01-01")
	p.EndCutoff = d(t, "2025-12-31")
	return p
}

// mustNormalize builds the sorted event list for planner-level tests.
func mustNormalize(t *testing.T, raw entities.RawDemand, params *entities.PlanningParameters) []entities.DemandEvent {
	t.Helper()
	events, err := NormalizeDemand(raw, params)
	if err != nil {
		t.Fatalf("NormalizeDemand failed: %v", err)
	}
	return events
}

// newPlanner wires a BatchPlanner from parameters and events the way the
// façade does.
func newPlanner(t *testing.T, params *entities.PlanningParameters, events []entities.DemandEvent) *BatchPlanner {
	t.Helper()
	profile := ProfileDemand(events, params.PeriodStart, params.PeriodEnd)
	sizing := EstimateBatchSizing(profile, params)
	strategy := SelectStrategy(params.LeadtimeDays, profile)
	return NewBatchPlanner(params, profile, sizing, strategy, zerolog.Nop())
}
