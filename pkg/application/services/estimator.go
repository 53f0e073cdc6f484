package services

import (
	"math"

	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// BatchSizing holds the derived sizing figures for one planning call. EOQ is
// advisory only; the planner enforces MinBatch/MaxBatch.
type BatchSizing struct {
	EOQ          float64
	SafetyStock  float64
	ReorderPoint float64
	MinBatch     float64
	MaxBatch     float64
	// UnitValueProxy is the holding-cost basis used when no unit cost is
	// supplied: holding_cost_rate * mean_daily_demand * 365.
	UnitValueProxy float64
}

// zTable maps service levels to inverse-normal z scores; lookups outside the
// table clamp to its edges, in between they interpolate linearly.
var zTable = []struct {
	level float64
	z     float64
}{
	{0.90, 1.28},
	{0.95, 1.65},
	{0.98, 2.05},
	{0.99, 2.33},
}

// zScore returns the z value for a service level via linear interpolation.
func zScore(serviceLevel float64) float64 {
	if serviceLevel <= zTable[0].level {
		return zTable[0].z
	}
	last := zTable[len(zTable)-1]
	if serviceLevel >= last.level {
		return last.z
	}
	for i := 1; i < len(zTable); i++ {
		lo, hi := zTable[i-1], zTable[i]
		if serviceLevel <= hi.level {
			frac := (serviceLevel - lo.level) / (hi.level - lo.level)
			return lo.z + frac*(hi.z-lo.z)
		}
	}
	return last.z
}

// EstimateBatchSizing computes EOQ, safety stock, reorder point and the
// effective batch bounds from the demand profile and parameters.
func EstimateBatchSizing(profile entities.DemandProfile, params *entities.PlanningParameters) BatchSizing {
	sizing := BatchSizing{
		MinBatch: params.EffectiveMinBatch(),
		MaxBatch: params.MaxBatchSize,
	}

	annualDemand := profile.MeanDailyDemand * 365
	sizing.UnitValueProxy = params.HoldingCostRate * profile.MeanDailyDemand * 365

	if params.EnableEOQOptimization && annualDemand > 0 {
		unitHolding := params.HoldingCostRate * sizing.UnitValueProxy
		if unitHolding > 0 {
			sizing.EOQ = math.Sqrt(2 * annualDemand * params.SetupCost / unitHolding)
		}
	}

	sizing.SafetyStock = zScore(params.ServiceLevel) * profile.StdDemand * math.Sqrt(float64(params.LeadtimeDays))
	capDays := math.Max(30, 0.3*float64(params.LeadtimeDays))
	if cap := capDays * profile.MeanDailyDemand; sizing.SafetyStock > cap {
		sizing.SafetyStock = cap
	}

	sizing.ReorderPoint = profile.MeanDailyDemand*float64(params.LeadtimeDays) + sizing.SafetyStock

	if params.AutoCalculateMaxBatchSize {
		multiplier := params.MaxBatchMultiplier
		if multiplier < 2 {
			multiplier = 2
		}
		sizing.MaxBatch = math.Max(profile.TotalDemand, profile.MaxSingleDemand*multiplier)
	}
	if sizing.MaxBatch < sizing.MinBatch {
		sizing.MaxBatch = sizing.MinBatch
	}
	return sizing
}
