package services

import (
	"math"
	"time"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
	"github.com/sporadiq/mrp/pkg/formulas"
)

// distributionShape names one way of splitting an oversized group.
type distributionShape string

const (
	shapeUniform      distributionShape = "uniform"
	shapeProgressive  distributionShape = "progressive"
	shapeFrontLoaded  distributionShape = "front_loaded"
	shapeSmartBalance distributionShape = "smart_balanced"
)

// splitOversizedGroup breaks a candidate whose quantity exceeds the max
// batch size into ceil(q/max) batches. Long-lead candidates evaluate four
// distributions against the stock simulator and keep the one with the
// smallest stockout severity, ties broken by the lowest CV of batch sizes.
// Other strategies split onto consecutive production days.
func (p *BatchPlanner) splitOversizedGroup(
	c *batchCandidate,
	emitted []entities.Batch,
	events []entities.DemandEvent,
) []entities.Batch {
	n := int(math.Ceil(c.quantity / p.sizing.MaxBatch))

	if p.strategy != entities.StrategyLongHybrid {
		return p.splitDaily(c, n)
	}

	arrivals := p.splitArrivals(c.group, c.arrival, n)
	shapes := []distributionShape{shapeUniform, shapeProgressive, shapeFrontLoaded, shapeSmartBalance}

	var best []entities.Batch
	bestSeverity := math.Inf(1)
	bestCV := math.Inf(1)
	for _, shape := range shapes {
		quantities, ok := p.shapeQuantities(shape, c.quantity, arrivals, c.group)
		if !ok {
			continue
		}
		candidate := p.assembleSplit(c, arrivals, quantities)

		sim := SimulateStock(
			p.params.InitialStock,
			append(append([]entities.Batch{}, emitted...), candidate...),
			events,
			p.params.PeriodStart, p.params.PeriodEnd,
		)
		cv := formulas.CV(quantities)

		const eps = 1e-9
		if sim.StockoutSeverity < bestSeverity-eps ||
			(math.Abs(sim.StockoutSeverity-bestSeverity) <= eps && cv < bestCV-eps) {
			best = candidate
			bestSeverity = sim.StockoutSeverity
			bestCV = cv
		}
	}
	return best
}

// splitDaily emits sibling batches on consecutive production days, one per
// day of at most the max batch size. When the cutoff window has fewer days
// than siblings the plan is capacity limited: the emitted batches are flagged
// and the quantity that cannot arrive in time is recorded as unmet demand.
func (p *BatchPlanner) splitDaily(c *batchCandidate, n int) []entities.Batch {
	latestOrder := calendar.AddDays(p.params.EndCutoff, -p.params.LeadtimeDays)
	slots := calendar.DaysBetween(c.order, latestOrder) + 1
	if slots < 1 {
		slots = 1
	}

	quantity := c.quantity
	unmet := 0.0
	if n > slots {
		quantity = float64(slots) * p.sizing.MaxBatch
		unmet = c.quantity - quantity
		n = slots
	}

	share := quantity / float64(n)
	batches := make([]entities.Batch, n)
	for i := range batches {
		a := c.analytics
		if i > 0 {
			a.DemandsCovered = nil
		}
		a.ShortfallCovered = c.analytics.ShortfallCovered / float64(n)
		a.CapacityLimited = unmet > 0
		order := calendar.AddDays(c.order, i)
		batches[i] = entities.Batch{
			OrderDate:   order,
			ArrivalDate: calendar.AddDays(order, p.params.LeadtimeDays),
			Quantity:    share,
			Analytics:   a,
		}
	}
	if unmet > 0 {
		batches[n-1].Analytics.UnmetDemand = unmet
	}
	return batches
}

// splitArrivals spaces n arrivals from the candidate's arrival to the
// group's last demand date, each clamped into the cutoff window.
func (p *BatchPlanner) splitArrivals(group *demandGroup, first time.Time, n int) []time.Time {
	span := calendar.DaysBetween(first, group.last().Date)
	if span < 0 {
		span = 0
	}
	arrivals := make([]time.Time, n)
	for i := range arrivals {
		offset := 0
		if n > 1 {
			offset = span * i / (n - 1)
		}
		order := p.orderWindow(calendar.AddDays(first, offset-p.params.LeadtimeDays))
		arrivals[i] = calendar.AddDays(order, p.params.LeadtimeDays)
	}
	return arrivals
}

// shapeQuantities produces the per-batch quantities of a candidate shape.
// A shape is rejected when any share exceeds the max batch size.
func (p *BatchPlanner) shapeQuantities(
	shape distributionShape,
	total float64,
	arrivals []time.Time,
	group *demandGroup,
) ([]float64, bool) {
	n := len(arrivals)
	weights := make([]float64, n)

	switch shape {
	case shapeUniform:
		for i := range weights {
			weights[i] = 1
		}
	case shapeProgressive:
		for i := range weights {
			weights[i] = float64(n - i)
		}
	case shapeFrontLoaded:
		if n == 1 {
			weights[0] = 1
			break
		}
		weights[0] = float64(n - 1) // half the total up front
		for i := 1; i < n; i++ {
			weights[i] = 1
		}
	case shapeSmartBalance:
		// Weight each batch by the demand inside its arrival segment.
		for i := range arrivals {
			segEnd := p.params.PeriodEnd
			if i+1 < n {
				segEnd = calendar.AddDays(arrivals[i+1], -1)
			}
			weights[i] = demandInRange(group.events, calendar.AddDays(arrivals[i], -1), segEnd)
		}
	}

	weightSum := sum(weights)
	if weightSum <= 0 {
		return nil, false
	}
	quantities := make([]float64, n)
	for i, w := range weights {
		quantities[i] = total * w / weightSum
		if quantities[i] > p.sizing.MaxBatch*(1+1e-9) {
			return nil, false
		}
	}
	return quantities, true
}

// assembleSplit builds the batch slice for one shape. Only the first
// arrival is graded against the group's first demand date; later siblings
// cover later demands.
func (p *BatchPlanner) assembleSplit(
	c *batchCandidate,
	arrivals []time.Time,
	quantities []float64,
) []entities.Batch {
	totalQty := math.Max(sum(quantities), 1e-9)
	batches := make([]entities.Batch, len(arrivals))
	for i := range arrivals {
		a := c.analytics
		if i > 0 {
			a.DemandsCovered = nil
			a.IsCritical = false
			a.ArrivalDelay = 0
			a.SafetyMarginDays = 0
		}
		a.ShortfallCovered = c.analytics.ShortfallCovered * quantities[i] / totalQty
		batches[i] = entities.Batch{
			OrderDate:   calendar.AddDays(arrivals[i], -p.params.LeadtimeDays),
			ArrivalDate: arrivals[i],
			Quantity:    quantities[i],
			Analytics:   a,
		}
	}
	return batches
}
