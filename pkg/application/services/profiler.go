package services

import (
	"sort"
	"time"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
	"github.com/sporadiq/mrp/pkg/formulas"
)

// ProfileDemand derives the statistics that drive strategy selection, batch
// sizing and the analytics bundle. An empty series yields a zero profile.
func ProfileDemand(events []entities.DemandEvent, periodStart, periodEnd time.Time) entities.DemandProfile {
	profile := entities.DemandProfile{
		PeriodDays: calendar.PeriodDays(periodStart, periodEnd),
	}
	if len(events) == 0 {
		return profile
	}

	quantities := make([]float64, len(events))
	for i, ev := range events {
		quantities[i] = ev.Quantity
	}

	profile.EventCount = len(events)
	profile.TotalDemand = sum(quantities)
	profile.MeanDemand = formulas.Mean(quantities)
	profile.StdDemand = formulas.StdDev(quantities)
	profile.CV = formulas.CV(quantities)
	profile.MaxSingleDemand = quantities[0]
	profile.MinSingleDemand = quantities[0]
	for _, q := range quantities[1:] {
		if q > profile.MaxSingleDemand {
			profile.MaxSingleDemand = q
		}
		if q < profile.MinSingleDemand {
			profile.MinSingleDemand = q
		}
	}

	profile.Intervals = intervalsBetween(events)
	if len(profile.Intervals) > 0 {
		asFloats := make([]float64, len(profile.Intervals))
		profile.MinInterval = profile.Intervals[0]
		profile.MaxInterval = profile.Intervals[0]
		for i, iv := range profile.Intervals {
			asFloats[i] = float64(iv)
			if iv < profile.MinInterval {
				profile.MinInterval = iv
			}
			if iv > profile.MaxInterval {
				profile.MaxInterval = iv
			}
		}
		profile.MeanInterval = formulas.Mean(asFloats)
		profile.IntervalVariance = formulas.Variance(asFloats)
	}

	profile.ConcentrationIndex = float64(len(events)) / float64(profile.PeriodDays)
	profile.ConcentrationLevel = concentrationLevel(profile.ConcentrationIndex)

	profile.PeakThreshold = profile.MeanDemand + profile.StdDemand
	if profile.StdDemand == 0 {
		profile.PeakThreshold = 1.5 * profile.MeanDemand
	}
	for _, ev := range events {
		if ev.Quantity > profile.PeakThreshold {
			profile.PeakDates = append(profile.PeakDates, calendar.Format(ev.Date))
		}
	}

	profile.Predictability = predictability(profile.CV)
	profile.ABCByEvent = classifyABC(events, profile.TotalDemand)
	profile.XYZ = classifyXYZ(profile.CV)

	profile.MeanDailyDemand = profile.TotalDemand / float64(profile.PeriodDays)
	return profile
}

func intervalsBetween(events []entities.DemandEvent) []int {
	if len(events) < 2 {
		return nil
	}
	intervals := make([]int, 0, len(events)-1)
	for i := 1; i < len(events); i++ {
		intervals = append(intervals, calendar.DaysBetween(events[i-1].Date, events[i].Date))
	}
	return intervals
}

func concentrationLevel(index float64) entities.ConcentrationLevel {
	switch {
	case index > 0.3:
		return entities.ConcentrationHigh
	case index >= 0.1:
		return entities.ConcentrationMedium
	default:
		return entities.ConcentrationLow
	}
}

func predictability(cv float64) entities.Predictability {
	switch {
	case cv <= 0.3:
		return entities.PredictabilityHigh
	case cv <= 0.6:
		return entities.PredictabilityMedium
	default:
		return entities.PredictabilityLow
	}
}

// classifyABC labels each event by its cumulative share of total demand,
// largest events first: A within 70%, B within 90%, C beyond.
func classifyABC(events []entities.DemandEvent, total float64) map[string]entities.ABCClass {
	classes := make(map[string]entities.ABCClass, len(events))
	if total <= 0 {
		return classes
	}

	ordered := make([]entities.DemandEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Quantity > ordered[j].Quantity
	})

	cumulative := 0.0
	for _, ev := range ordered {
		cumulative += ev.Quantity
		share := cumulative / total
		class := entities.ABCClassC
		switch {
		case share <= 0.7:
			class = entities.ABCClassA
		case share <= 0.9:
			class = entities.ABCClassB
		}
		classes[calendar.Format(ev.Date)] = class
	}
	return classes
}

func classifyXYZ(cv float64) entities.XYZClass {
	switch {
	case cv <= 0.2:
		return entities.XYZClassX
	case cv <= 0.5:
		return entities.XYZClassY
	default:
		return entities.XYZClassZ
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
