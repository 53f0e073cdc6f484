package services

import (
	"math"
	"testing"

	"github.com/sporadiq/mrp/pkg/domain/entities"
)

func TestZScoreInterpolation(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{0.90, 1.28},
		{0.95, 1.65},
		{0.98, 2.05},
		{0.99, 2.33},
		{0.925, 1.465}, // halfway between 0.90 and 0.95
		{0.50, 1.28},   // clamps low
		{0.999, 2.33},  // clamps high
	}
	for _, tt := range tests {
		if got := zScore(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("zScore(%g) = %g, want %g", tt.level, got, tt.want)
		}
	}
}

func TestEstimateBatchSizing_SafetyStockCap(t *testing.T) {
	params := baseParams(t)
	params.LeadtimeDays = 10
	params.ServiceLevel = 0.99

	// Wild variability forces the raw safety stock above the cap of
	// max(30, 0.3*leadtime) days of mean consumption.
	events := mustNormalize(t, entities.RawDemand{
		"2025-01-10": 10, "2025-03-10": 5000,
	}, &params)
	profile := ProfileDemand(events, params.PeriodStart, params.PeriodEnd)

	sizing := EstimateBatchSizing(profile, &params)
	cap := 30 * profile.MeanDailyDemand
	if sizing.SafetyStock > cap+1e-9 {
		t.Errorf("safety stock %g exceeds cap %g", sizing.SafetyStock, cap)
	}
}

func TestEstimateBatchSizing_ReorderPoint(t *testing.T) {
	params := baseParams(t)
	params.LeadtimeDays = 20

	events := mustNormalize(t, entities.RawDemand{
		"2025-01-10": 100, "2025-02-10": 100, "2025-03-10": 100,
	}, &params)
	profile := ProfileDemand(events, params.PeriodStart, params.PeriodEnd)

	sizing := EstimateBatchSizing(profile, &params)
	want := profile.MeanDailyDemand*20 + sizing.SafetyStock
	if math.Abs(sizing.ReorderPoint-want) > 1e-9 {
		t.Errorf("reorder point = %g, want %g", sizing.ReorderPoint, want)
	}
}

func TestEstimateBatchSizing_AutoMaxBatch(t *testing.T) {
	params := baseParams(t)
	params.AutoCalculateMaxBatchSize = true
	params.MaxBatchMultiplier = 3

	events := mustNormalize(t, entities.RawDemand{
		"2025-01-10": 4000, "2025-03-10": 1000,
	}, &params)
	profile := ProfileDemand(events, params.PeriodStart, params.PeriodEnd)

	sizing := EstimateBatchSizing(profile, &params)
	// max(total_demand, max_single*multiplier) = max(5000, 12000)
	if sizing.MaxBatch != 12000 {
		t.Errorf("auto max batch = %g, want 12000", sizing.MaxBatch)
	}
}

func TestEstimateBatchSizing_MinBatchModes(t *testing.T) {
	params := baseParams(t)
	events := mustNormalize(t, entities.RawDemand{"2025-01-10": 100}, &params)
	profile := ProfileDemand(events, params.PeriodStart, params.PeriodEnd)

	sizing := EstimateBatchSizing(profile, &params)
	if sizing.MinBatch != 1 {
		t.Errorf("default min batch = %g, want floor 1", sizing.MinBatch)
	}

	params.ExactQuantityMatch = true
	sizing = EstimateBatchSizing(profile, &params)
	if sizing.MinBatch != 0 {
		t.Errorf("exact mode min batch = %g, want 0", sizing.MinBatch)
	}
}

func TestEstimateBatchSizing_EOQAdvisory(t *testing.T) {
	params := baseParams(t)
	events := mustNormalize(t, entities.RawDemand{
		"2025-01-10": 500, "2025-04-10": 500, "2025-08-10": 500,
	}, &params)
	profile := ProfileDemand(events, params.PeriodStart, params.PeriodEnd)

	sizing := EstimateBatchSizing(profile, &params)
	if sizing.EOQ <= 0 {
		t.Errorf("EOQ should be positive with demand present, got %g", sizing.EOQ)
	}

	params.EnableEOQOptimization = false
	sizing = EstimateBatchSizing(profile, &params)
	if sizing.EOQ != 0 {
		t.Errorf("EOQ should be 0 when disabled, got %g", sizing.EOQ)
	}
}
