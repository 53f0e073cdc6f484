// Package dto holds the JSON request and response shapes shared by the HTTP
// handler and the CLI.
package dto

import (
	"time"

	"github.com/sporadiq/mrp/pkg/application/services"
	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// PlanRequest is the wire form of one planning call. Optional fields are
// pointers so absent keys keep their documented defaults.
type PlanRequest struct {
	ID           string             `json:"id,omitempty"`
	DailyDemands map[string]float64 `json:"daily_demands"`

	InitialStock    *float64 `json:"initial_stock"`
	LeadtimeDays    *int     `json:"leadtime_days"`
	PeriodStartDate string   `json:"period_start_date"`
	PeriodEndDate   string   `json:"period_end_date"`
	StartCutoffDate string   `json:"start_cutoff_date"`
	EndCutoffDate   string   `json:"end_cutoff_date"`

	SafetyMarginPercent *float64 `json:"safety_margin_percent,omitempty"`
	SafetyDays          *int     `json:"safety_days,omitempty"`
	MinimumStockPercent *float64 `json:"minimum_stock_percent,omitempty"`
	MaxGapDays          *int     `json:"max_gap_days,omitempty"`

	SetupCost              *float64 `json:"setup_cost,omitempty"`
	HoldingCostRate        *float64 `json:"holding_cost_rate,omitempty"`
	StockoutCostMultiplier *float64 `json:"stockout_cost_multiplier,omitempty"`
	ServiceLevel           *float64 `json:"service_level,omitempty"`
	MinBatchSize           *float64 `json:"min_batch_size,omitempty"`
	MaxBatchSize           *float64 `json:"max_batch_size,omitempty"`

	EnableConsolidation   *bool `json:"enable_consolidation,omitempty"`
	EnableEOQOptimization *bool `json:"enable_eoq_optimization,omitempty"`

	ForceConsolidationWithinLeadtime *bool    `json:"force_consolidation_within_leadtime,omitempty"`
	MinConsolidationBenefit          *float64 `json:"min_consolidation_benefit,omitempty"`
	OperationalEfficiencyWeight      *float64 `json:"operational_efficiency_weight,omitempty"`
	OverlapPreventionPriority        *bool    `json:"overlap_prevention_priority,omitempty"`

	ExactQuantityMatch      *bool `json:"exact_quantity_match,omitempty"`
	IgnoreSafetyStock       *bool `json:"ignore_safety_stock,omitempty"`
	ForceInformativeBatches *bool `json:"force_informative_batches,omitempty"`
	ForceExcessProduction   *bool `json:"force_excess_production,omitempty"`

	AutoCalculateMaxBatchSize *bool    `json:"auto_calculate_max_batch_size,omitempty"`
	MaxBatchMultiplier        *float64 `json:"max_batch_multiplier,omitempty"`
}

// ToDomain validates the wire request and produces the façade input with
// defaults applied.
func (r *PlanRequest) ToDomain() (*services.PlanRequest, error) {
	if r.DailyDemands == nil {
		return nil, entities.NewInvalidInput("daily_demands is required")
	}
	if r.InitialStock == nil {
		return nil, entities.NewInvalidInput("initial_stock is required")
	}
	if r.LeadtimeDays == nil {
		return nil, entities.NewInvalidInput("leadtime_days is required")
	}

	params := entities.DefaultParameters()
	params.InitialStock = *r.InitialStock
	params.LeadtimeDays = *r.LeadtimeDays

	var err error
	if params.PeriodStart, err = parseRequired("period_start_date", r.PeriodStartDate); err != nil {
		return nil, err
	}
	if params.PeriodEnd, err = parseRequired("period_end_date", r.PeriodEndDate); err != nil {
		return nil, err
	}
	if params.StartCutoff, err = parseRequired("start_cutoff_date", r.StartCutoffDate); err != nil {
		return nil, err
	}
	if params.EndCutoff, err = parseRequired("end_cutoff_date", r.EndCutoffDate); err != nil {
		return nil, err
	}

	setFloat(&params.SafetyMarginPercent, r.SafetyMarginPercent)
	setInt(&params.SafetyDays, r.SafetyDays)
	setFloat(&params.MinimumStockPercent, r.MinimumStockPercent)
	setInt(&params.MaxGapDays, r.MaxGapDays)
	setFloat(&params.SetupCost, r.SetupCost)
	setFloat(&params.HoldingCostRate, r.HoldingCostRate)
	setFloat(&params.StockoutCostMultiplier, r.StockoutCostMultiplier)
	setFloat(&params.ServiceLevel, r.ServiceLevel)
	setFloat(&params.MinBatchSize, r.MinBatchSize)
	setFloat(&params.MaxBatchSize, r.MaxBatchSize)
	setBool(&params.EnableConsolidation, r.EnableConsolidation)
	setBool(&params.EnableEOQOptimization, r.EnableEOQOptimization)
	setBool(&params.ForceConsolidationWithinLeadtime, r.ForceConsolidationWithinLeadtime)
	setFloat(&params.MinConsolidationBenefit, r.MinConsolidationBenefit)
	setFloat(&params.OperationalEfficiencyWeight, r.OperationalEfficiencyWeight)
	setBool(&params.OverlapPreventionPriority, r.OverlapPreventionPriority)
	setBool(&params.ExactQuantityMatch, r.ExactQuantityMatch)
	setBool(&params.IgnoreSafetyStock, r.IgnoreSafetyStock)
	setBool(&params.ForceInformativeBatches, r.ForceInformativeBatches)
	setBool(&params.ForceExcessProduction, r.ForceExcessProduction)
	setBool(&params.AutoCalculateMaxBatchSize, r.AutoCalculateMaxBatchSize)
	setFloat(&params.MaxBatchMultiplier, r.MaxBatchMultiplier)

	return &services.PlanRequest{
		ID:     r.ID,
		Demand: entities.RawDemand(r.DailyDemands),
		Params: params,
	}, nil
}

func parseRequired(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, entities.NewInvalidInput("%s is required", field)
	}
	parsed, err := calendar.ParseDate(value)
	if err != nil {
		return time.Time{}, entities.NewInvalidInput("%s: expected YYYY-MM-DD, got %q", field, value)
	}
	return parsed, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// BatchDTO is the wire form of one batch.
type BatchDTO struct {
	OrderDate   string                  `json:"order_date"`
	ArrivalDate string                  `json:"arrival_date"`
	Quantity    float64                 `json:"quantity"`
	Analytics   entities.BatchAnalytics `json:"analytics"`
}

// PlanResponse is the success envelope.
type PlanResponse struct {
	ID        string                   `json:"id,omitempty"`
	Batches   []BatchDTO               `json:"batches"`
	Analytics entities.AnalyticsBundle `json:"analytics"`
}

// ErrorResponse is the failure envelope. Batches is always present (empty)
// so callers can parse both shapes uniformly.
type ErrorResponse struct {
	Error     bool                      `json:"error"`
	Kind      string                    `json:"kind"`
	Message   string                    `json:"message"`
	Batches   []BatchDTO                `json:"batches"`
	Analytics *entities.AnalyticsBundle `json:"analytics,omitempty"`
}

// FromResult shapes the façade output for the wire.
func FromResult(result *services.PlanResult) *PlanResponse {
	batches := make([]BatchDTO, 0, len(result.Batches))
	for _, b := range result.Batches {
		batches = append(batches, BatchDTO{
			OrderDate:   calendar.Format(b.OrderDate),
			ArrivalDate: calendar.Format(b.ArrivalDate),
			Quantity:    b.Quantity,
			Analytics:   b.Analytics,
		})
	}
	return &PlanResponse{ID: result.ID, Batches: batches, Analytics: result.Analytics}
}

// FromError shapes a planning failure, attaching partial analytics when the
// façade produced them.
func FromError(err error, partial *services.PlanResult) *ErrorResponse {
	resp := &ErrorResponse{
		Error:   true,
		Kind:    entities.KindOf(err).String(),
		Message: err.Error(),
		Batches: []BatchDTO{},
	}
	if partial != nil {
		resp.Analytics = &partial.Analytics
	}
	return resp
}
