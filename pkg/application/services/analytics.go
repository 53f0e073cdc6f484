package services

import (
	"fmt"
	"math"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
	"github.com/sporadiq/mrp/pkg/formulas"
)

// AssembleAnalytics derives the reporting bundle from the simulation. Only
// real batches participate; informative batches must not reach here.
func AssembleAnalytics(
	params *entities.PlanningParameters,
	profile entities.DemandProfile,
	sizing BatchSizing,
	strategy entities.Strategy,
	batches []entities.Batch,
	events []entities.DemandEvent,
	sim entities.SimulationResult,
) entities.AnalyticsBundle {
	bundle := entities.AnalyticsBundle{
		StockEvolution:   sim.StockEvolution,
		StockEndOfPeriod: monthEndStocks(sim),
		CriticalPoints:   sim.CriticalPoints,
	}

	bundle.Summary = assembleSummary(params, profile, strategy, batches, sim)
	bundle.Performance = assemblePerformance(profile, batches, sim)
	bundle.Costs = assembleCosts(params, profile, sizing, batches, sim)
	bundle.Demand = assembleDemandMetrics(profile, events)
	bundle.Risk = assembleRisk(profile, sim)
	bundle.Seasonality = detectSeasonality(bundle.Demand.DemandByMonth)
	bundle.WhatIf = whatIfScenarios(params, sizing, bundle.Costs)
	bundle.Recommendations = buildRecommendations(params, profile, batches, bundle)
	bundle.ProductionEfficiency = assembleProductionEfficiency(params, batches)

	for _, b := range batches {
		bundle.OrderDates = append(bundle.OrderDates, calendar.Format(b.OrderDate))
	}
	return bundle
}

func assembleSummary(
	params *entities.PlanningParameters,
	profile entities.DemandProfile,
	strategy entities.Strategy,
	batches []entities.Batch,
	sim entities.SimulationResult,
) entities.Summary {
	summary := entities.Summary{
		InitialStock:     params.InitialStock,
		FinalStock:       sim.FinalStock,
		MinimumStock:     sim.MinimumStock,
		MinimumStockDate: sim.MinimumStockDate,
		TotalBatches:     len(batches),
		TotalDemand:      profile.TotalDemand,
		DemandEvents:     profile.EventCount,
		Strategy:         strategy.String(),
	}
	for _, b := range batches {
		summary.TotalProduced += b.Quantity
		summary.UnmetDemand += b.Analytics.UnmetDemand
	}
	if profile.TotalDemand > 0 {
		summary.ProductionCoverageRate = summary.TotalProduced / profile.TotalDemand
	}
	if sim.DemandsTotal > 0 {
		summary.DemandFulfillmentRate = float64(sim.DemandsMet) / float64(sim.DemandsTotal) * 100
	}
	for _, level := range sim.Levels {
		if level < 0 {
			summary.StockoutDays++
		}
	}
	return summary
}

func assemblePerformance(
	profile entities.DemandProfile,
	batches []entities.Batch,
	sim entities.SimulationResult,
) entities.PerformanceMetrics {
	perf := entities.PerformanceMetrics{}
	if sim.DemandsTotal > 0 {
		perf.RealizedServiceLevel = float64(sim.DemandsMet) / float64(sim.DemandsTotal) * 100
	}

	avgStock := formulas.Mean(sim.Levels)
	if avgStock > 0 {
		perf.InventoryTurnover = profile.TotalDemand / avgStock
	}
	if profile.MeanDailyDemand > 0 {
		perf.AverageDaysOfInventory = avgStock / profile.MeanDailyDemand
	}
	if profile.PeriodDays > 0 {
		perf.SetupFrequencyPerMonth = float64(len(batches)) / (float64(profile.PeriodDays) / 30)
	}
	if len(batches) > 0 {
		total := 0.0
		onTime := 0
		for _, b := range batches {
			total += b.Quantity
			if !b.Analytics.IsCritical && !b.Analytics.CapacityLimited {
				onTime++
			}
		}
		perf.AverageBatchSize = total / float64(len(batches))
		perf.PerfectOrderRate = float64(onTime) / float64(len(batches)) * 100
	}
	perf.StockCV = formulas.CV(sim.Levels)
	return perf
}

func assembleCosts(
	params *entities.PlanningParameters,
	profile entities.DemandProfile,
	sizing BatchSizing,
	batches []entities.Batch,
	sim entities.SimulationResult,
) entities.CostAnalysis {
	periodYears := float64(profile.PeriodDays) / 365
	avgStock := math.Max(0, formulas.Mean(sim.Levels))

	costs := entities.CostAnalysis{
		SetupCost:      float64(len(batches)) * params.SetupCost,
		HoldingCost:    avgStock * sizing.UnitValueProxy * params.HoldingCostRate * periodYears,
		StockoutCost:   sim.StockoutSeverity * params.StockoutCostMultiplier,
		UnitValueProxy: sizing.UnitValueProxy,
		EOQ:            sizing.EOQ,
	}
	costs.TotalCost = costs.SetupCost + costs.HoldingCost + costs.StockoutCost
	if costs.TotalCost > 0 {
		costs.SetupCostPercent = costs.SetupCost / costs.TotalCost * 100
		costs.HoldingCostPercent = costs.HoldingCost / costs.TotalCost * 100
		costs.StockoutCostPercent = costs.StockoutCost / costs.TotalCost * 100
	}
	return costs
}

func assembleDemandMetrics(profile entities.DemandProfile, events []entities.DemandEvent) entities.DemandMetrics {
	byMonth := make(map[string]float64)
	for _, ev := range events {
		byMonth[calendar.MonthKey(ev.Date)] += ev.Quantity
	}
	return entities.DemandMetrics{
		TotalDemand:        profile.TotalDemand,
		MeanDemand:         profile.MeanDemand,
		StdDemand:          profile.StdDemand,
		CV:                 profile.CV,
		MaxSingleDemand:    profile.MaxSingleDemand,
		MinSingleDemand:    profile.MinSingleDemand,
		EventCount:         profile.EventCount,
		MeanInterval:       profile.MeanInterval,
		MinInterval:        profile.MinInterval,
		MaxInterval:        profile.MaxInterval,
		IntervalVariance:   profile.IntervalVariance,
		ConcentrationIndex: profile.ConcentrationIndex,
		ConcentrationLevel: profile.ConcentrationLevel,
		PeakThreshold:      profile.PeakThreshold,
		PeakDates:          profile.PeakDates,
		Predictability:     profile.Predictability,
		ABCByEvent:         profile.ABCByEvent,
		XYZ:                profile.XYZ,
		DemandByMonth:      byMonth,
	}
}

func assembleRisk(profile entities.DemandProfile, sim entities.SimulationResult) entities.RiskAnalysis {
	risk := entities.RiskAnalysis{DemandUncertaintyCV: profile.CV}

	atRiskDays := 0
	for _, point := range sim.CriticalPoints {
		if point.Severity == entities.SeverityStockout || point.Severity == entities.SeverityCritical {
			atRiskDays++
		}
	}
	if len(sim.Levels) > 0 {
		risk.StockoutProbability = float64(atRiskDays) / float64(len(sim.Levels))
		risk.ExpectedStockoutsPerYear = risk.StockoutProbability * 365
	}

	risk.ValueAtRisk = formulas.Quantile(0.05, sim.Levels)
	tail := make([]float64, 0, len(sim.Levels))
	for _, level := range sim.Levels {
		if level <= risk.ValueAtRisk {
			tail = append(tail, level)
		}
	}
	risk.ConditionalVaR = formulas.Mean(tail)

	switch {
	case profile.CV <= 0.3:
		risk.DemandUncertainty = "low"
	case profile.CV <= 0.6:
		risk.DemandUncertainty = "moderate"
	default:
		risk.DemandUncertainty = "high"
	}
	return risk
}

// detectSeasonality flags a dominant month in the demand distribution.
func detectSeasonality(byMonth map[string]float64) entities.SeasonalityMarkers {
	if len(byMonth) < 3 {
		return entities.SeasonalityMarkers{}
	}
	total, peak := 0.0, 0.0
	for _, qty := range byMonth {
		total += qty
		if qty > peak {
			peak = qty
		}
	}
	if total <= 0 {
		return entities.SeasonalityMarkers{}
	}
	meanMonth := total / float64(len(byMonth))
	if peak > 2*meanMonth {
		return entities.SeasonalityMarkers{
			Detected: true,
			Type:     "monthly_peak",
			Strength: peak / total,
		}
	}
	return entities.SeasonalityMarkers{}
}

func whatIfScenarios(
	params *entities.PlanningParameters,
	sizing BatchSizing,
	costs entities.CostAnalysis,
) []entities.WhatIfScenario {
	return []entities.WhatIfScenario{
		{
			Name:             "demand_plus_20pct",
			SafetyStockDelta: 0.2 * sizing.SafetyStock,
			CostDelta:        0.2 * costs.HoldingCost,
			Description:      "All demand quantities increased by 20%",
		},
		{
			Name: "leadtime_minus_50pct",
			SafetyStockDelta: sizing.SafetyStock *
				(math.Sqrt(math.Max(0, float64(params.LeadtimeDays)/2))/
					math.Max(1, math.Sqrt(float64(params.LeadtimeDays))) - 1),
			CostDelta:   -0.25 * costs.HoldingCost,
			Description: "Lead time halved through supplier negotiation",
		},
		{
			Name:             "perfect_forecast",
			SafetyStockDelta: -sizing.SafetyStock,
			CostDelta:        -costs.StockoutCost,
			Description:      "Demand known in advance, no safety buffer needed",
		},
	}
}

// buildRecommendations derives the rule-based suggestion list. Rules fire in
// a fixed order so the output is stable across runs.
func buildRecommendations(
	params *entities.PlanningParameters,
	profile entities.DemandProfile,
	batches []entities.Batch,
	bundle entities.AnalyticsBundle,
) []entities.Recommendation {
	var recs []entities.Recommendation

	if bundle.Summary.StockoutDays > 0 {
		recs = append(recs, entities.Recommendation{
			Category: "service",
			Priority: "critical",
			Message: fmt.Sprintf("projected stockouts on %d day(s); increase safety margin or initial stock",
				bundle.Summary.StockoutDays),
		})
	}
	if params.LeadtimeDays > 45 {
		recs = append(recs, entities.Recommendation{
			Category: "supply",
			Priority: "high",
			Message: fmt.Sprintf("lead time of %d days forces large coverage batches; negotiate shorter lead times",
				params.LeadtimeDays),
		})
	}
	if bundle.Performance.RealizedServiceLevel > 0 && bundle.Performance.RealizedServiceLevel < 95 {
		recs = append(recs, entities.Recommendation{
			Category: "service",
			Priority: "high",
			Message: fmt.Sprintf("realized service level %.1f%% is below 95%%; consider a larger safety margin",
				bundle.Performance.RealizedServiceLevel),
		})
	}
	if bundle.Costs.HoldingCostPercent > 60 {
		recs = append(recs, entities.Recommendation{
			Category: "cost",
			Priority: "medium",
			Message:  "holding cost dominates total cost; smaller, more frequent batches may be cheaper",
		})
	}
	if profile.CV > 0.6 {
		recs = append(recs, entities.Recommendation{
			Category: "demand",
			Priority: "medium",
			Message:  "demand is highly variable; review forecasts with the commercial team before committing batches",
		})
	}
	if len(batches) == 0 {
		recs = append(recs, entities.Recommendation{
			Category: "inventory",
			Priority: "info",
			Message:  "current stock covers all demand in the period; no production required",
		})
	}
	return recs
}

func assembleProductionEfficiency(params *entities.PlanningParameters, batches []entities.Batch) entities.ProductionEfficiency {
	eff := entities.ProductionEfficiency{LeadTimeCompliance: 100}
	if len(batches) == 0 {
		return eff
	}

	total := 0.0
	compliant := 0
	for _, b := range batches {
		total += b.Quantity
		if calendar.DaysBetween(b.OrderDate, b.ArrivalDate) == params.LeadtimeDays {
			compliant++
		}
	}
	eff.AverageBatchSize = total / float64(len(batches))
	eff.LeadTimeCompliance = float64(compliant) / float64(len(batches)) * 100
	if params.MaxBatchSize > 0 {
		eff.ProductionLineUtilization = math.Min(1, eff.AverageBatchSize/params.MaxBatchSize) * 100
	}

	for i := 1; i < len(batches); i++ {
		gap := calendar.DaysBetween(batches[i-1].ArrivalDate, batches[i].ArrivalDate)
		gapType := "idle"
		switch {
		case gap < params.LeadtimeDays:
			gapType = "overlap"
		case gap <= 2*params.LeadtimeDays:
			gapType = "continuous"
		}
		if params.LeadtimeDays == 0 {
			gapType = "continuous"
		}
		eff.BatchGaps = append(eff.BatchGaps, entities.BatchGap{
			From:    calendar.Format(batches[i-1].ArrivalDate),
			To:      calendar.Format(batches[i].ArrivalDate),
			GapDays: gap,
			GapType: gapType,
		})
	}
	return eff
}

// monthEndStocks reduces the daily evolution to the last recorded level of
// each month.
func monthEndStocks(sim entities.SimulationResult) map[string]float64 {
	byMonth := make(map[string]float64)
	for i, date := range sim.Dates {
		byMonth[date[:7]] = sim.Levels[i]
	}
	return byMonth
}
