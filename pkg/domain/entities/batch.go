package entities

import "time"

// UrgencyLevel describes how tight a batch's timing is.
type UrgencyLevel string

// Urgency levels.
const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyNormal   UrgencyLevel = "normal"
	UrgencyPlanned  UrgencyLevel = "planned"
	UrgencyJIT      UrgencyLevel = "jit"
)

// ConsolidationQuality grades a merge decision by its net savings.
type ConsolidationQuality string

// Consolidation quality grades.
const (
	ConsolidationHigh   ConsolidationQuality = "high"
	ConsolidationMedium ConsolidationQuality = "medium"
	ConsolidationLow    ConsolidationQuality = "low"
)

// Batch is one replenishment order. ArrivalDate is always OrderDate plus the
// lead time. Once emitted a batch is only replaced wholesale by
// consolidation, never mutated field by field.
type Batch struct {
	OrderDate   time.Time
	ArrivalDate time.Time
	Quantity    float64
	Analytics   BatchAnalytics
}

// BatchAnalytics carries the descriptive fields attached to each batch.
// Zero-valued optional fields are omitted on the wire.
type BatchAnalytics struct {
	StockBeforeArrival          float64 `json:"stock_before_arrival"`
	StockAfterArrival           float64 `json:"stock_after_arrival"`
	ConsumptionSinceLastArrival float64 `json:"consumption_since_last_arrival"`
	CoverageDays                int     `json:"coverage_days"`
	ActualLeadTime              int     `json:"actual_lead_time"`

	UrgencyLevel UrgencyLevel `json:"urgency_level"`
	IsCritical   bool         `json:"is_critical"`
	ArrivalDelay int          `json:"arrival_delay,omitempty"`

	TargetDemandDate     string          `json:"target_demand_date,omitempty"`
	TargetDemandQuantity float64         `json:"target_demand_quantity,omitempty"`
	DemandsCovered       []CoveredDemand `json:"demands_covered,omitempty"`
	ShortfallCovered     float64         `json:"shortfall_covered"`
	EfficiencyRatio      float64         `json:"efficiency_ratio,omitempty"`
	SafetyMarginDays     int             `json:"safety_margin_days"`

	Strategy Strategy `json:"strategy"`

	ConsolidatedGroup    bool                 `json:"consolidated_group"`
	GroupSize            int                  `json:"group_size,omitempty"`
	ConsolidationQuality ConsolidationQuality `json:"consolidation_quality,omitempty"`
	ConsolidationRule    ConsolidationRule    `json:"consolidation_rule,omitempty"`
	NetSavings           float64              `json:"net_savings,omitempty"`
	HoldingCostIncrease  float64              `json:"holding_cost_increase,omitempty"`
	OverlapPrevented     bool                 `json:"overlap_prevented,omitempty"`

	LongLeadtimeOptimization bool    `json:"long_leadtime_optimization,omitempty"`
	FutureDemandConsidered   float64 `json:"future_demand_considered,omitempty"`
	CoverageWindowDays       int     `json:"coverage_window_days,omitempty"`
	GapToNextDemand          int     `json:"gap_to_next_demand,omitempty"`

	CapacityLimited bool    `json:"capacity_limited,omitempty"`
	UnmetDemand     float64 `json:"unmet_demand,omitempty"`

	InformativeBatch  bool   `json:"informative_batch,omitempty"`
	ActualNeed        string `json:"actual_need,omitempty"`
	ExcessProduction  bool   `json:"excess_production,omitempty"`
	ExactQuantityMode bool   `json:"exact_quantity_mode,omitempty"`
}

// ConsolidationRule identifies which merge criterion fired.
type ConsolidationRule string

// Consolidation rules, in evaluation order.
const (
	RulePositiveNetBenefit  ConsolidationRule = "positive_net_benefit"
	RuleMinBenefitThreshold ConsolidationRule = "min_benefit_threshold"
	RuleWithinLeadtime      ConsolidationRule = "within_leadtime"
	RuleShortGap            ConsolidationRule = "short_gap"
	RuleSmallBatches        ConsolidationRule = "small_batches"
	RuleCheapSetup          ConsolidationRule = "cheap_setup"
)

// ConsolidationDecision records the economics of one evaluated merge.
type ConsolidationDecision struct {
	Rule                ConsolidationRule
	Merge               bool
	GapDays             int
	SetupSavings        float64
	OperationalBenefits float64
	HoldingCostIncrease float64
	NetSavings          float64
	OverlapPrevented    bool
}

// Quality grades the decision: high when savings beat the setup cost,
// medium when they beat half of it.
func (d ConsolidationDecision) Quality(setupCost float64) ConsolidationQuality {
	switch {
	case d.NetSavings >= setupCost:
		return ConsolidationHigh
	case d.NetSavings >= setupCost/2:
		return ConsolidationMedium
	default:
		return ConsolidationLow
	}
}
