package entities

import (
	"time"
)

// PlanningParameters are the inputs of a single planning call.
type PlanningParameters struct {
	InitialStock float64
	LeadtimeDays int

	PeriodStart time.Time
	PeriodEnd   time.Time
	StartCutoff time.Time
	EndCutoff   time.Time

	SafetyMarginPercent float64
	SafetyDays          int
	MinimumStockPercent float64

	// MaxGapDays bounds the grouping gap and doubles as the consolidation
	// aggressiveness dial: values of 30 and above widen the coverage window.
	MaxGapDays int

	SetupCost              float64
	HoldingCostRate        float64
	StockoutCostMultiplier float64
	ServiceLevel           float64

	MinBatchSize float64
	MaxBatchSize float64

	EnableConsolidation   bool
	EnableEOQOptimization bool

	ForceConsolidationWithinLeadtime bool
	MinConsolidationBenefit          float64
	OperationalEfficiencyWeight      float64
	OverlapPreventionPriority        bool

	ExactQuantityMatch      bool
	IgnoreSafetyStock       bool
	ForceInformativeBatches bool
	ForceExcessProduction   bool

	AutoCalculateMaxBatchSize bool
	MaxBatchMultiplier        float64
}

// DefaultParameters returns the documented defaults. Dates are left zero and
// must be supplied by the caller.
func DefaultParameters() PlanningParameters {
	return PlanningParameters{
		SafetyMarginPercent:              8,
		SafetyDays:                       2,
		MinimumStockPercent:              0,
		MaxGapDays:                       999,
		SetupCost:                        250,
		HoldingCostRate:                  0.20,
		StockoutCostMultiplier:           2.5,
		ServiceLevel:                     0.95,
		MinBatchSize:                     1,
		MaxBatchSize:                     10000,
		EnableConsolidation:              true,
		EnableEOQOptimization:            true,
		ForceConsolidationWithinLeadtime: true,
		MinConsolidationBenefit:          500,
		OperationalEfficiencyWeight:      1.0,
		MaxBatchMultiplier:               2,
	}
}

// Validate checks field-level constraints. Cross-field feasibility of the
// cutoff window is checked separately so the façade can report it as
// InfeasibleWindow rather than InvalidInput.
func (p *PlanningParameters) Validate() error {
	if p.InitialStock < 0 {
		return NewInvalidInput("initial_stock must be >= 0, got %g", p.InitialStock)
	}
	if p.LeadtimeDays < 0 {
		return NewInvalidInput("leadtime_days must be >= 0, got %d", p.LeadtimeDays)
	}
	if p.PeriodStart.IsZero() || p.PeriodEnd.IsZero() {
		return NewInvalidInput("period_start and period_end are required")
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return NewInvalidInput("period_end precedes period_start")
	}
	if p.StartCutoff.IsZero() || p.EndCutoff.IsZero() {
		return NewInvalidInput("start_cutoff and end_cutoff are required")
	}
	if p.EndCutoff.Before(p.StartCutoff) {
		return NewInvalidInput("end_cutoff precedes start_cutoff")
	}
	if p.SafetyMarginPercent < 0 {
		return NewInvalidInput("safety_margin_percent must be >= 0, got %g", p.SafetyMarginPercent)
	}
	if p.SafetyDays < 0 {
		return NewInvalidInput("safety_days must be >= 0, got %d", p.SafetyDays)
	}
	if p.MinimumStockPercent < 0 {
		return NewInvalidInput("minimum_stock_percent must be >= 0, got %g", p.MinimumStockPercent)
	}
	if p.MaxGapDays < 1 {
		return NewInvalidInput("max_gap_days must be >= 1, got %d", p.MaxGapDays)
	}
	if p.MinBatchSize < 0 {
		return NewInvalidInput("min_batch_size must be >= 0, got %g", p.MinBatchSize)
	}
	if p.MaxBatchSize <= 0 {
		return NewInvalidInput("max_batch_size must be > 0, got %g", p.MaxBatchSize)
	}
	if p.MaxBatchSize < p.MinBatchSize {
		return NewInvalidInput("max_batch_size %g below min_batch_size %g", p.MaxBatchSize, p.MinBatchSize)
	}
	if p.ServiceLevel <= 0 || p.ServiceLevel >= 1 {
		return NewInvalidInput("service_level must be in (0, 1), got %g", p.ServiceLevel)
	}
	if p.MaxBatchMultiplier < 2 {
		return NewInvalidInput("max_batch_multiplier must be >= 2, got %g", p.MaxBatchMultiplier)
	}
	return nil
}

// WindowFeasible reports whether any batch can both be ordered and arrive
// inside the cutoff window.
func (p *PlanningParameters) WindowFeasible() bool {
	return !p.StartCutoff.AddDate(0, 0, p.LeadtimeDays).After(p.EndCutoff)
}

// EffectiveMinBatch is the lower quantity bound: the user floor, relaxed to
// zero under exact-quantity matching.
func (p *PlanningParameters) EffectiveMinBatch() float64 {
	if p.ExactQuantityMatch {
		return 0
	}
	if p.MinBatchSize < 1 {
		return 1
	}
	return p.MinBatchSize
}
