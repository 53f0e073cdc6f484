package services

import (
	"time"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// symbolicInformativeQuantity is emitted when an informative batch is
// requested against zero demand.
const symbolicInformativeQuantity = 50

// BuildForcedBatch emits the informative or excess batch used when planning
// found no real need. Informative batches are excluded from all analytics
// arithmetic; excess batches are real production. ok is false when neither
// mode applies.
func BuildForcedBatch(
	params *entities.PlanningParameters,
	profile entities.DemandProfile,
	strategy entities.Strategy,
) (entities.Batch, bool) {
	if !params.ForceInformativeBatches && !params.ForceExcessProduction {
		return entities.Batch{}, false
	}

	quantity := profile.TotalDemand
	informative := params.ForceInformativeBatches
	if informative && quantity <= 0 {
		quantity = symbolicInformativeQuantity
	}
	if !informative && quantity <= 0 {
		return entities.Batch{}, false
	}

	arrival := midPeriodArrival(params)
	order := calendar.AddDays(arrival, -params.LeadtimeDays)

	analytics := entities.BatchAnalytics{
		Strategy:             strategy,
		ActualLeadTime:       params.LeadtimeDays,
		UrgencyLevel:         entities.UrgencyPlanned,
		TargetDemandQuantity: profile.TotalDemand,
	}
	if informative {
		analytics.InformativeBatch = true
		analytics.ActualNeed = "none"
	} else {
		analytics.ExcessProduction = true
	}

	return entities.Batch{
		OrderDate:   order,
		ArrivalDate: arrival,
		Quantity:    quantity,
		Analytics:   analytics,
	}, true
}

// midPeriodArrival places the arrival near the middle of the period, clamped
// into [start_cutoff + leadtime, end_cutoff].
func midPeriodArrival(params *entities.PlanningParameters) time.Time {
	mid := calendar.AddDays(params.PeriodStart, calendar.DaysBetween(params.PeriodStart, params.PeriodEnd)/2)
	earliest := calendar.AddDays(params.StartCutoff, params.LeadtimeDays)
	mid = calendar.MaxDate(mid, earliest)
	mid = calendar.MinDate(mid, params.EndCutoff)
	return mid
}
