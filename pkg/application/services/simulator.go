package services

import (
	"time"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// SimulateStock replays the plan day by day over [periodStart, periodEnd].
// Within a day arrivals are credited before demand is consumed, so a batch
// arriving on the demand date can satisfy it. Informative batches must be
// excluded by the caller.
func SimulateStock(
	initialStock float64,
	batches []entities.Batch,
	events []entities.DemandEvent,
	periodStart, periodEnd time.Time,
) entities.SimulationResult {
	arrivals := make(map[string]float64, len(batches))
	for _, b := range batches {
		arrivals[calendar.Format(b.ArrivalDate)] += b.Quantity
	}
	demands := make(map[string]float64, len(events))
	for _, ev := range events {
		demands[calendar.Format(ev.Date)] += ev.Quantity
	}

	periodDays := calendar.PeriodDays(periodStart, periodEnd)
	result := entities.SimulationResult{
		StockEvolution: make(map[string]float64, periodDays),
		Dates:          make([]string, 0, periodDays),
		Levels:         make([]float64, 0, periodDays),
		DemandsTotal:   len(demands),
	}

	dailyMean := 0.0
	if total := sumDemand(events); total > 0 && periodDays > 0 {
		dailyMean = total / float64(periodDays)
	}

	stock := initialStock
	result.MinimumStock = initialStock
	result.MinimumStockDate = calendar.Format(periodStart)

	calendar.EachDay(periodStart, periodEnd, func(day time.Time) {
		key := calendar.Format(day)
		stock += arrivals[key]
		if demand, ok := demands[key]; ok {
			if stock >= demand {
				result.DemandsMet++
			}
			stock -= demand
		}

		result.StockEvolution[key] = stock
		result.Dates = append(result.Dates, key)
		result.Levels = append(result.Levels, stock)

		if stock < result.MinimumStock {
			result.MinimumStock = stock
			result.MinimumStockDate = key
		}
		if stock < 0 {
			result.StockoutSeverity += -stock
		}

		if point, ok := classifyStockLevel(key, stock, dailyMean); ok {
			result.CriticalPoints = append(result.CriticalPoints, point)
		}
	})

	result.FinalStock = stock
	return result
}

// classifyStockLevel grades one day's closing stock against mean daily
// consumption.
func classifyStockLevel(date string, stock, dailyMean float64) (entities.CriticalPoint, bool) {
	coverage := 0.0
	if dailyMean > 0 {
		coverage = stock / dailyMean
	}
	point := entities.CriticalPoint{Date: date, Stock: stock, DaysOfCoverage: coverage}

	switch {
	case stock < 0:
		point.Severity = entities.SeverityStockout
	case dailyMean > 0 && stock < dailyMean:
		point.Severity = entities.SeverityCritical
	case dailyMean > 0 && stock < 2*dailyMean && coverage < 5:
		point.Severity = entities.SeverityWarning
	default:
		return entities.CriticalPoint{}, false
	}
	return point, true
}

func sumDemand(events []entities.DemandEvent) float64 {
	total := 0.0
	for _, ev := range events {
		total += ev.Quantity
	}
	return total
}
