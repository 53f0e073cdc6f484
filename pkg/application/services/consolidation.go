package services

import (
	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// consolidate merges adjacent candidates while any merge rule fires. A merge
// keeps the earlier candidate's dates and sums the quantities; the decision
// economics are recorded on the surviving candidate.
func (p *BatchPlanner) consolidate(candidates []*batchCandidate) []*batchCandidate {
	if len(candidates) < 2 {
		return candidates
	}

	merged := true
	for merged {
		merged = false
		for i := 0; i+1 < len(candidates); i++ {
			a, b := candidates[i], candidates[i+1]
			if a.quantity+b.quantity > p.sizing.MaxBatch && p.strategy != entities.StrategyLongHybrid {
				continue
			}
			decision := p.evaluateMerge(a, b)
			if !decision.Merge {
				continue
			}
			candidates[i] = p.mergeCandidates(a, b, decision)
			candidates = append(candidates[:i+1], candidates[i+2:]...)
			merged = true
			break
		}
	}
	return candidates
}

// evaluateMerge applies the consolidation rules to two adjacent candidates.
// The first rule that holds wins.
func (p *BatchPlanner) evaluateMerge(a, b *batchCandidate) entities.ConsolidationDecision {
	gap := calendar.DaysBetween(a.arrival, b.arrival)

	setupSavings := p.params.SetupCost
	holdingIncrease := b.quantity * p.sizing.UnitValueProxy * p.params.HoldingCostRate * float64(gap) / 365

	withinLeadtime := gap <= p.params.LeadtimeDays
	benefits := 0.0
	overlapPrevented := false
	if withinLeadtime {
		benefits += 0.5 * p.params.SetupCost
		if p.params.OverlapPreventionPriority {
			benefits += p.params.MinConsolidationBenefit
			overlapPrevented = true
		}
	}
	if gap <= 14 {
		benefits += 0.2 * p.params.SetupCost
	}
	if a.quantity+b.quantity >= 1.5*p.sizing.MinBatch {
		benefits += 0.1 * p.params.SetupCost
	}
	benefits *= p.params.OperationalEfficiencyWeight

	decision := entities.ConsolidationDecision{
		GapDays:             gap,
		SetupSavings:        setupSavings,
		OperationalBenefits: benefits,
		HoldingCostIncrease: holdingIncrease,
		NetSavings:          setupSavings + benefits - holdingIncrease,
		OverlapPrevented:    overlapPrevented,
	}
	totalBenefits := setupSavings + benefits
	smallBatch := p.profile.MeanDemand

	switch {
	case decision.NetSavings > 0:
		decision.Rule = entities.RulePositiveNetBenefit
		decision.Merge = true
	case totalBenefits >= p.params.MinConsolidationBenefit && p.params.MinConsolidationBenefit > 0:
		decision.Rule = entities.RuleMinBenefitThreshold
		decision.Merge = true
	case withinLeadtime && p.params.ForceConsolidationWithinLeadtime &&
		holdingIncrease < 1.5*p.params.SetupCost:
		decision.Rule = entities.RuleWithinLeadtime
		decision.Merge = true
	case gap <= 7 && holdingIncrease < 1.2*p.params.SetupCost:
		decision.Rule = entities.RuleShortGap
		decision.Merge = true
	case gap <= 14 && a.quantity < smallBatch && b.quantity < smallBatch &&
		holdingIncrease < 2*p.params.MinConsolidationBenefit:
		decision.Rule = entities.RuleSmallBatches
		decision.Merge = true
	case p.params.SetupCost < 100 && gap <= 21 && holdingIncrease < 200:
		decision.Rule = entities.RuleCheapSetup
		decision.Merge = true
	}
	return decision
}

// mergeCandidates folds b into a, keeping a's dates.
func (p *BatchPlanner) mergeCandidates(a, b *batchCandidate, decision entities.ConsolidationDecision) *batchCandidate {
	group := &demandGroup{
		events:           append(append([]entities.DemandEvent{}, a.group.events...), b.group.events...),
		overlapPrevented: a.group.overlapPrevented || b.group.overlapPrevented || decision.OverlapPrevented,
	}

	analytics := a.analytics
	analytics.TargetDemandQuantity = a.analytics.TargetDemandQuantity + b.analytics.TargetDemandQuantity
	analytics.ShortfallCovered = a.analytics.ShortfallCovered + b.analytics.ShortfallCovered
	analytics.ConsolidatedGroup = true
	analytics.GroupSize = len(group.events)
	analytics.DemandsCovered = coveredDemands(group.events)
	analytics.ConsolidationRule = decision.Rule
	analytics.ConsolidationQuality = decision.Quality(p.params.SetupCost)
	analytics.NetSavings = decision.NetSavings
	analytics.HoldingCostIncrease = decision.HoldingCostIncrease
	analytics.OverlapPrevented = group.overlapPrevented
	analytics.GapToNextDemand = b.analytics.GapToNextDemand
	analytics.LongLeadtimeOptimization = a.analytics.LongLeadtimeOptimization || b.analytics.LongLeadtimeOptimization

	p.log.Debug().
		Str("rule", string(decision.Rule)).
		Int("gap_days", decision.GapDays).
		Float64("net_savings", decision.NetSavings).
		Msg("candidates consolidated")

	return &batchCandidate{
		group:     group,
		order:     a.order,
		arrival:   a.arrival,
		quantity:  a.quantity + b.quantity,
		analytics: analytics,
	}
}
