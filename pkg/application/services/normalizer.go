package services

import (
	"sort"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// NormalizeDemand validates and filters a raw demand map against the
// planning period. Out-of-period and non-positive entries are silently
// dropped; multiple entries resolving to the same date are summed. The
// result is sorted ascending by date.
//
// Returns InvalidInput when nothing remains and the caller did not ask for
// informative or forced excess output.
func NormalizeDemand(raw entities.RawDemand, params *entities.PlanningParameters) ([]entities.DemandEvent, error) {
	byDate := make(map[string]float64, len(raw))
	for key, qty := range raw {
		date, err := calendar.ParseFlexible(key)
		if err != nil {
			return nil, entities.NewInvalidInput("demand key %q: expected YYYY-MM-DD or YYYY-MM", key)
		}
		if qty <= 0 {
			continue
		}
		if date.Before(params.PeriodStart) || date.After(params.PeriodEnd) {
			continue
		}
		byDate[calendar.Format(date)] += qty
	}

	events := make([]entities.DemandEvent, 0, len(byDate))
	for key, qty := range byDate {
		date, _ := calendar.ParseDate(key)
		events = append(events, entities.DemandEvent{Date: date, Quantity: qty})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	if len(events) == 0 && !params.ForceInformativeBatches && !params.ForceExcessProduction {
		return nil, entities.NewInvalidInput("no demand events inside the planning period")
	}
	return events, nil
}
