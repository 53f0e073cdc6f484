package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// PlanRequest is one planning call: a raw demand map plus its parameters.
// ID is echoed into the result when set, otherwise a fresh UUID is issued.
type PlanRequest struct {
	ID     string
	Demand entities.RawDemand
	Params entities.PlanningParameters
}

// PlanResult is the façade output. Batches may legitimately be empty when
// stock covers the demand and no force flag is set.
type PlanResult struct {
	ID        string
	Batches   []entities.Batch
	Analytics entities.AnalyticsBundle
}

// PlanService composes the planning pipeline: normalization, profiling,
// sizing, strategy selection, batch planning, simulation and analytics.
type PlanService struct {
	log zerolog.Logger
}

// NewPlanService creates a planning façade.
func NewPlanService(log zerolog.Logger) *PlanService {
	return &PlanService{log: log}
}

// Plan executes one planning call. Validation failures return InvalidInput;
// an impossible cutoff window returns InfeasibleWindow together with a
// result whose analytics cover initial stock and demand only. Defects are
// wrapped as internal errors, never panics.
func (s *PlanService) Plan(ctx context.Context, req *PlanRequest) (result *PlanResult, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = entities.NewInternal("planning failed", fmt.Errorf("panic: %v", r))
			s.log.Error().Str("plan_id", req.ID).Interface("panic", r).Msg("planner panicked")
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, entities.NewInternal("planning canceled", err)
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	log := s.log.With().Str("plan_id", id).Logger()

	params := req.Params
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate parameters: %w", err)
	}

	events, err := NormalizeDemand(req.Demand, &params)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize demand: %w", err)
	}

	profile := ProfileDemand(events, params.PeriodStart, params.PeriodEnd)
	sizing := EstimateBatchSizing(profile, &params)
	strategy := SelectStrategy(params.LeadtimeDays, profile)

	if !params.WindowFeasible() {
		// No batch can be ordered and still arrive in time; report the
		// window and surface the resulting stockouts over initial stock.
		sim := SimulateStock(params.InitialStock, nil, events, params.PeriodStart, params.PeriodEnd)
		bundle := AssembleAnalytics(&params, profile, sizing, strategy, nil, events, sim)
		return &PlanResult{ID: id, Analytics: bundle},
			entities.NewInfeasibleWindow("start_cutoff %s plus %d day lead time exceeds end_cutoff %s",
				calendar.Format(params.StartCutoff), params.LeadtimeDays, calendar.Format(params.EndCutoff))
	}

	planner := NewBatchPlanner(&params, profile, sizing, strategy, log)
	batches := planner.Plan(events)

	// The forced branches apply only when planning found no real need.
	var informative *entities.Batch
	if len(batches) == 0 {
		if forced, ok := BuildForcedBatch(&params, profile, strategy); ok {
			if forced.Analytics.InformativeBatch {
				informative = &forced
			} else {
				batches = append(batches, forced)
			}
		}
	}

	sim := SimulateStock(params.InitialStock, batches, events, params.PeriodStart, params.PeriodEnd)
	bundle := AssembleAnalytics(&params, profile, sizing, strategy, batches, events, sim)

	out := batches
	if informative != nil {
		out = append(out, *informative)
	}

	log.Info().
		Int("batches", len(out)).
		Str("strategy", strategy.String()).
		Float64("total_demand", profile.TotalDemand).
		Float64("final_stock", sim.FinalStock).
		Dur("elapsed", time.Since(start)).
		Msg("plan computed")

	return &PlanResult{ID: id, Batches: out, Analytics: bundle}, nil
}
