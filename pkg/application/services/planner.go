package services

import (
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// BatchPlanner builds the replenishment batches for one planning call. It
// walks demand events in date order, maintaining projected stock, and
// operates in phases: grouping, order dating, quantity sizing,
// consolidation, and long-lead distribution.
type BatchPlanner struct {
	params   *entities.PlanningParameters
	profile  entities.DemandProfile
	sizing   BatchSizing
	strategy entities.Strategy
	log      zerolog.Logger
}

// NewBatchPlanner wires a planner for a single call. The planner owns no
// state across calls.
func NewBatchPlanner(
	params *entities.PlanningParameters,
	profile entities.DemandProfile,
	sizing BatchSizing,
	strategy entities.Strategy,
	log zerolog.Logger,
) *BatchPlanner {
	return &BatchPlanner{
		params:   params,
		profile:  profile,
		sizing:   sizing,
		strategy: strategy,
		log:      log,
	}
}

// demandGroup is a run of demand events served by one candidate batch.
type demandGroup struct {
	events           []entities.DemandEvent
	overlapPrevented bool
}

func (g *demandGroup) first() entities.DemandEvent { return g.events[0] }
func (g *demandGroup) last() entities.DemandEvent  { return g.events[len(g.events)-1] }

func (g *demandGroup) total() float64 {
	t := 0.0
	for _, ev := range g.events {
		t += ev.Quantity
	}
	return t
}

// batchCandidate is a sized group before consolidation and splitting.
type batchCandidate struct {
	group     *demandGroup
	order     time.Time
	arrival   time.Time
	quantity  float64
	analytics entities.BatchAnalytics
}

// Plan emits the batch sequence for the normalized events. An empty result
// is legitimate when projected stock covers every demand.
func (p *BatchPlanner) Plan(events []entities.DemandEvent) []entities.Batch {
	if len(events) == 0 {
		return nil
	}

	// Phase A: grouping.
	groups := p.groupEvents(events)
	p.log.Debug().
		Int("events", len(events)).
		Int("groups", len(groups)).
		Str("strategy", p.strategy.String()).
		Msg("demand grouped")

	// Phases B and C: order dates and quantities per group.
	var candidates []*batchCandidate
	for i, group := range groups {
		var nextDemand time.Time
		if i+1 < len(groups) {
			nextDemand = groups[i+1].first().Date
		}
		if c := p.buildCandidate(group, nextDemand, candidates, events); c != nil {
			candidates = append(candidates, c)
		}
	}

	// Phase D: consolidation decision across candidates. JIT orders exactly
	// when needed, so its candidates are never merged.
	if p.params.EnableConsolidation && p.strategy != entities.StrategyJIT {
		candidates = p.consolidate(candidates)
	}

	// Phase E: split candidates that exceed the max batch size.
	var batches []entities.Batch
	for _, c := range candidates {
		batches = append(batches, p.emitCandidate(c, batches, events)...)
	}

	if !p.params.EnableConsolidation {
		p.enforceSpacing(batches)
	}
	if p.params.ExactQuantityMatch {
		p.normalizeExactQuantities(batches)
	}

	p.annotate(batches, events)
	return batches
}

// coverageWindowDays is the grouping horizon measured from the group's first
// arrival target. The max_gap_days dial widens the base window.
func (p *BatchPlanner) coverageWindowDays() int {
	base := 2 * p.params.LeadtimeDays
	if base > 45 {
		base = 45
	}
	switch {
	case p.params.MaxGapDays >= 90:
		return base * 5
	case p.params.MaxGapDays >= 30:
		return base * 3
	default:
		return base
	}
}

// groupEvents implements the grouping phase. With consolidation disabled
// every event forms its own group.
func (p *BatchPlanner) groupEvents(events []entities.DemandEvent) []*demandGroup {
	window := p.coverageWindowDays()

	var groups []*demandGroup
	var current *demandGroup
	for _, ev := range events {
		if current == nil {
			current = &demandGroup{events: []entities.DemandEvent{ev}}
			continue
		}

		join := false
		overlap := false
		if p.params.EnableConsolidation {
			gap := calendar.DaysBetween(current.last().Date, ev.Date)
			if calendar.DaysBetween(current.first().Date, ev.Date) <= window && gap <= p.params.MaxGapDays {
				join = true
			} else if p.wouldOverlapInTransit(current, ev) {
				join = true
				overlap = true
			}
		}

		if join {
			current.events = append(current.events, ev)
			current.overlapPrevented = current.overlapPrevented || overlap
		} else {
			groups = append(groups, current)
			current = &demandGroup{events: []entities.DemandEvent{ev}}
		}
	}
	groups = append(groups, current)
	return groups
}

// wouldOverlapInTransit reports whether the event's own order would have to
// be placed while the current group's order is still in transit.
func (p *BatchPlanner) wouldOverlapInTransit(current *demandGroup, ev entities.DemandEvent) bool {
	if p.params.LeadtimeDays == 0 {
		return false
	}
	groupArrival := calendar.AddDays(current.first().Date, -p.params.SafetyDays)
	nextOrder := calendar.AddDays(ev.Date, -(p.params.LeadtimeDays + p.params.SafetyDays))
	return nextOrder.Before(groupArrival)
}

// orderWindow clamps an order date into [start_cutoff, end_cutoff-leadtime].
func (p *BatchPlanner) orderWindow(order time.Time) time.Time {
	latest := calendar.AddDays(p.params.EndCutoff, -p.params.LeadtimeDays)
	order = calendar.MaxDate(order, p.params.StartCutoff)
	order = calendar.MinDate(order, latest)
	return order
}

// buildCandidate runs the order-dating and quantity phases for one group.
// Groups fully covered by projected stock return nil.
func (p *BatchPlanner) buildCandidate(
	group *demandGroup,
	nextDemand time.Time,
	prior []*batchCandidate,
	events []entities.DemandEvent,
) *batchCandidate {
	target := group.first().Date

	var order time.Time
	if p.strategy == entities.StrategyJIT {
		order = p.orderWindow(target)
	} else {
		order = p.orderWindow(calendar.AddDays(target, -(p.params.LeadtimeDays + p.params.SafetyDays)))
	}
	arrival := calendar.AddDays(order, p.params.LeadtimeDays)

	quantity, analytics := p.sizeGroup(group, arrival, nextDemand, prior, events)
	if quantity <= 0 {
		return nil
	}

	analytics.Strategy = p.strategy
	analytics.ActualLeadTime = p.params.LeadtimeDays
	analytics.OverlapPrevented = group.overlapPrevented
	if arrival.After(target) {
		analytics.IsCritical = true
		analytics.ArrivalDelay = calendar.DaysBetween(target, arrival)
	} else {
		analytics.SafetyMarginDays = calendar.DaysBetween(arrival, target)
	}

	return &batchCandidate{
		group:     group,
		order:     order,
		arrival:   arrival,
		quantity:  quantity,
		analytics: analytics,
	}
}

// emitCandidate turns a candidate into one batch, or several when its
// quantity exceeds the max batch size.
func (p *BatchPlanner) emitCandidate(
	c *batchCandidate,
	emitted []entities.Batch,
	events []entities.DemandEvent,
) []entities.Batch {
	if c.quantity <= p.sizing.MaxBatch {
		quantity := c.quantity
		if quantity < p.sizing.MinBatch {
			quantity = p.sizing.MinBatch
		}
		return []entities.Batch{{
			OrderDate:   c.order,
			ArrivalDate: c.arrival,
			Quantity:    quantity,
			Analytics:   c.analytics,
		}}
	}
	return p.splitOversizedGroup(c, emitted, events)
}

// sizeGroup computes the quantity phase for one group and seeds its batch
// analytics.
func (p *BatchPlanner) sizeGroup(
	group *demandGroup,
	arrival time.Time,
	nextDemand time.Time,
	prior []*batchCandidate,
	events []entities.DemandEvent,
) (float64, entities.BatchAnalytics) {
	groupDemand := group.total()
	stockBefore := p.projectCandidateStock(arrival, prior, events)

	shortfall := math.Max(0, groupDemand-stockBefore)

	safety := 0.0
	minStock := 0.0
	if !p.params.IgnoreSafetyStock {
		safety = shortfall * p.params.SafetyMarginPercent / 100
		minStock = p.params.MinimumStockPercent / 100 * p.profile.MaxSingleDemand
	}
	quantity := shortfall + safety + minStock

	analytics := entities.BatchAnalytics{
		TargetDemandDate:     calendar.Format(group.first().Date),
		TargetDemandQuantity: groupDemand,
		ShortfallCovered:     shortfall,
		ConsolidatedGroup:    len(group.events) > 1,
		GroupSize:            len(group.events),
		DemandsCovered:       coveredDemands(group.events),
		ExactQuantityMode:    p.params.ExactQuantityMatch,
	}

	if quantity <= 0 {
		return 0, analytics
	}

	// Long-lead coverage extension: only when the next demand sits beyond
	// another full lead time, so this batch must carry the gap.
	if p.params.LeadtimeDays >= 45 && !nextDemand.IsZero() {
		gap := calendar.DaysBetween(group.last().Date, nextDemand)
		analytics.GapToNextDemand = gap
		if gap > p.params.LeadtimeDays {
			window := int(math.Min(0.3*float64(p.params.LeadtimeDays), 45))
			future := p.weightedFutureDemand(arrival, group, events)

			quantity += 0.5 * groupDemand
			quantity += p.profile.MeanDailyDemand * float64(window)
			quantity += future

			analytics.LongLeadtimeOptimization = true
			analytics.FutureDemandConsidered = future
			analytics.CoverageWindowDays = window
		}
	}
	if p.strategy == entities.StrategyLongHybrid {
		analytics.LongLeadtimeOptimization = true
		if analytics.CoverageWindowDays == 0 {
			analytics.CoverageWindowDays = p.coverageWindowDays()
		}
	}
	return quantity, analytics
}

// weightedFutureDemand sums demands after the group inside the forward
// coverage window, weighted linearly from 1.0 at arrival down to 0.2 at the
// window edge.
func (p *BatchPlanner) weightedFutureDemand(arrival time.Time, group *demandGroup, events []entities.DemandEvent) float64 {
	windowDays := float64(p.coverageWindowDays())
	if windowDays <= 0 {
		return 0
	}
	edge := calendar.AddDays(arrival, int(windowDays))
	last := group.last().Date

	total := 0.0
	for _, ev := range events {
		if !ev.Date.After(last) || ev.Date.After(edge) {
			continue
		}
		distance := float64(calendar.DaysBetween(arrival, ev.Date))
		weight := 1.0 - 0.8*math.Min(1, distance/windowDays)
		total += ev.Quantity * weight
	}
	return total
}

// projectStock is the projected stock at the start of the given day:
// arrivals on or before the day count, demands strictly before it count.
// Same-day demand is consumed after the arrival.
func (p *BatchPlanner) projectStock(day time.Time, batches []entities.Batch, events []entities.DemandEvent) float64 {
	stock := p.params.InitialStock
	for _, b := range batches {
		if !b.ArrivalDate.After(day) {
			stock += b.Quantity
		}
	}
	for _, ev := range events {
		if ev.Date.Before(day) {
			stock -= ev.Quantity
		}
	}
	return stock
}

// projectCandidateStock is projectStock over candidates not yet emitted.
func (p *BatchPlanner) projectCandidateStock(day time.Time, candidates []*batchCandidate, events []entities.DemandEvent) float64 {
	stock := p.params.InitialStock
	for _, c := range candidates {
		if !c.arrival.After(day) {
			stock += c.quantity
		}
	}
	for _, ev := range events {
		if ev.Date.Before(day) {
			stock -= ev.Quantity
		}
	}
	return stock
}

// enforceSpacing applies the no-consolidation rule: batches whose coverage
// windows overlap keep their order dates at least one lead time apart.
func (p *BatchPlanner) enforceSpacing(batches []entities.Batch) {
	if p.params.LeadtimeDays == 0 {
		return
	}
	window := 2 * p.params.LeadtimeDays
	if window > 45 {
		window = 45
	}
	for i := 1; i < len(batches); i++ {
		prev, cur := &batches[i-1], &batches[i]
		windowsOverlap := calendar.DaysBetween(prev.ArrivalDate, cur.ArrivalDate) <= window
		tooClose := calendar.DaysBetween(prev.OrderDate, cur.OrderDate) < p.params.LeadtimeDays
		if !windowsOverlap || !tooClose {
			continue
		}
		target := cur.ArrivalDate
		cur.OrderDate = p.orderWindow(calendar.AddDays(prev.OrderDate, p.params.LeadtimeDays))
		cur.ArrivalDate = calendar.AddDays(cur.OrderDate, p.params.LeadtimeDays)
		if cur.ArrivalDate.After(target) {
			cur.Analytics.IsCritical = true
			cur.Analytics.ArrivalDelay = calendar.DaysBetween(target, cur.ArrivalDate)
			cur.Analytics.SafetyMarginDays = 0
		}
	}
}

// normalizeExactQuantities rescales quantities so their total equals
// max(0, total demand - initial stock) exactly, pushing the rounding
// residual onto the last batch.
func (p *BatchPlanner) normalizeExactQuantities(batches []entities.Batch) {
	if len(batches) == 0 {
		return
	}
	target := decimal.NewFromFloat(p.profile.TotalDemand).
		Sub(decimal.NewFromFloat(p.params.InitialStock))
	if target.IsNegative() {
		target = decimal.Zero
	}

	current := decimal.Zero
	for _, b := range batches {
		current = current.Add(decimal.NewFromFloat(b.Quantity))
	}
	if current.IsZero() {
		return
	}

	ratio := target.Div(current)
	running := decimal.Zero
	for i := range batches[:len(batches)-1] {
		q := decimal.NewFromFloat(batches[i].Quantity).Mul(ratio).Round(6)
		batches[i].Quantity, _ = q.Float64()
		batches[i].Analytics.ExactQuantityMode = true
		running = running.Add(q)
	}
	lastQty, _ := target.Sub(running).Float64()
	batches[len(batches)-1].Quantity = lastQty
	batches[len(batches)-1].Analytics.ExactQuantityMode = true
}

// annotate fills the simulation-dependent analytics once the batch set is
// final.
func (p *BatchPlanner) annotate(batches []entities.Batch, events []entities.DemandEvent) {
	var lastArrival time.Time
	for i := range batches {
		b := &batches[i]

		before := p.projectStock(b.ArrivalDate, batches[:i], events)
		b.Analytics.StockBeforeArrival = before
		b.Analytics.StockAfterArrival = before + b.Quantity

		if i > 0 {
			b.Analytics.ConsumptionSinceLastArrival = demandInRange(events, lastArrival, b.ArrivalDate)
		}
		lastArrival = b.ArrivalDate

		if p.profile.MeanDailyDemand > 0 {
			b.Analytics.CoverageDays = int(b.Analytics.StockAfterArrival / p.profile.MeanDailyDemand)
		}
		if b.Analytics.TargetDemandQuantity > 0 {
			b.Analytics.EfficiencyRatio = b.Quantity / b.Analytics.TargetDemandQuantity
		}
		b.Analytics.UrgencyLevel = p.urgency(b)
	}
}

// demandInRange sums demand in (after, through].
func demandInRange(events []entities.DemandEvent, after, through time.Time) float64 {
	total := 0.0
	for _, ev := range events {
		if ev.Date.After(after) && !ev.Date.After(through) {
			total += ev.Quantity
		}
	}
	return total
}

func (p *BatchPlanner) urgency(b *entities.Batch) entities.UrgencyLevel {
	switch {
	case p.strategy == entities.StrategyJIT:
		return entities.UrgencyJIT
	case b.Analytics.IsCritical:
		return entities.UrgencyCritical
	case b.Analytics.SafetyMarginDays <= p.params.SafetyDays:
		return entities.UrgencyHigh
	case b.Analytics.SafetyMarginDays > 2*p.params.LeadtimeDays:
		return entities.UrgencyPlanned
	default:
		return entities.UrgencyNormal
	}
}

func coveredDemands(events []entities.DemandEvent) []entities.CoveredDemand {
	covered := make([]entities.CoveredDemand, len(events))
	for i, ev := range events {
		covered[i] = entities.CoveredDemand{Date: calendar.Format(ev.Date), Quantity: ev.Quantity}
	}
	return covered
}
