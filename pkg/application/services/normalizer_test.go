package services

import (
	"testing"

	"github.com/sporadiq/mrp/pkg/domain/entities"
)

func TestNormalizeDemand(t *testing.T) {
	params := baseParams(t)

	t.Run("orders_events", func(t *testing.T) {
		events := mustNormalize(t, entities.RawDemand{
			"2025-06-01": 30,
			"2025-01-10": 100,
			"2025-03-15": 50,
		}, &params)
		if len(events) != 3 {
			t.Fatalf("expected 3 events, got %d", len(events))
		}
		for i := 1; i < len(events); i++ {
			if !events[i-1].Date.Before(events[i].Date) {
				t.Errorf("events not sorted at %d", i)
			}
		}
	})

	t.Run("drops_out_of_period_and_non_positive", func(t *testing.T) {
		events := mustNormalize(t, entities.RawDemand{
			"2024-12-31": 100, // before period
			"2026-01-01": 100, // after period
			"2025-05-01": 0,   // non-positive
			"2025-05-02": -10, // non-positive
			"2025-05-03": 40,
		}, &params)
		if len(events) != 1 || events[0].Quantity != 40 {
			t.Fatalf("expected only the valid event, got %+v", events)
		}
	})

	t.Run("month_buckets_resolve_to_first_day", func(t *testing.T) {
		events := mustNormalize(t, entities.RawDemand{"2025-07": 6500}, &params)
		if len(events) != 1 || events[0].Date != d(t, "2025-07-01") {
			t.Fatalf("month bucket not resolved: %+v", events)
		}
	})

	t.Run("same_date_quantities_sum", func(t *testing.T) {
		events := mustNormalize(t, entities.RawDemand{
			"2025-07":    100,
			"2025-07-01": 50,
		}, &params)
		if len(events) != 1 || events[0].Quantity != 150 {
			t.Fatalf("expected one summed event of 150, got %+v", events)
		}
	})

	t.Run("malformed_key_is_invalid_input", func(t *testing.T) {
		_, err := NormalizeDemand(entities.RawDemand{"not-a-date": 10}, &params)
		if entities.KindOf(err) != entities.ErrKindInvalidInput {
			t.Fatalf("expected invalid_input, got %v", err)
		}
	})

	t.Run("empty_without_force_flags_is_invalid_input", func(t *testing.T) {
		_, err := NormalizeDemand(entities.RawDemand{}, &params)
		if entities.KindOf(err) != entities.ErrKindInvalidInput {
			t.Fatalf("expected invalid_input, got %v", err)
		}
	})

	t.Run("empty_with_informative_flag_is_allowed", func(t *testing.T) {
		forced := params
		forced.ForceInformativeBatches = true
		events, err := NormalizeDemand(entities.RawDemand{}, &forced)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(events) != 0 {
			t.Fatalf("expected no events, got %d", len(events))
		}
	})
}
