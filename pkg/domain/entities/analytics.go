package entities

// Severity grades a critical point in the stock simulation.
type Severity string

// Critical point severities.
const (
	SeverityStockout Severity = "stockout"
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// CriticalPoint marks a day where projected stock is dangerously low.
type CriticalPoint struct {
	Date           string   `json:"date"`
	Stock          float64  `json:"stock"`
	DaysOfCoverage float64  `json:"days_of_coverage"`
	Severity       Severity `json:"severity"`
}

// SimulationResult is the stock simulator's output over the planning period.
type SimulationResult struct {
	// StockEvolution holds one level per day, keyed by YYYY-MM-DD.
	StockEvolution   map[string]float64
	Dates            []string
	Levels           []float64
	MinimumStock     float64
	MinimumStockDate string
	FinalStock       float64
	CriticalPoints   []CriticalPoint
	// StockoutSeverity is the sum over days of max(0, -stock).
	StockoutSeverity float64
	DemandsMet       int
	DemandsTotal     int
}

// Summary aggregates the headline figures of a plan.
type Summary struct {
	InitialStock           float64 `json:"initial_stock"`
	FinalStock             float64 `json:"final_stock"`
	MinimumStock           float64 `json:"minimum_stock"`
	MinimumStockDate       string  `json:"minimum_stock_date,omitempty"`
	TotalBatches           int     `json:"total_batches"`
	TotalProduced          float64 `json:"total_produced"`
	TotalDemand            float64 `json:"total_demand"`
	DemandEvents           int     `json:"demand_events"`
	ProductionCoverageRate float64 `json:"production_coverage_rate"`
	DemandFulfillmentRate  float64 `json:"demand_fulfillment_rate"`
	UnmetDemand            float64 `json:"unmet_demand,omitempty"`
	Strategy               string  `json:"strategy"`
	StockoutDays           int     `json:"stockout_days"`
}

// PerformanceMetrics reports realized service quality.
type PerformanceMetrics struct {
	RealizedServiceLevel   float64 `json:"realized_service_level"`
	InventoryTurnover      float64 `json:"inventory_turnover"`
	AverageDaysOfInventory float64 `json:"average_days_of_inventory"`
	SetupFrequencyPerMonth float64 `json:"setup_frequency_per_month"`
	AverageBatchSize       float64 `json:"average_batch_size"`
	StockCV                float64 `json:"stock_cv"`
	PerfectOrderRate       float64 `json:"perfect_order_rate"`
}

// CostAnalysis estimates setup, holding and stockout costs.
type CostAnalysis struct {
	SetupCost           float64 `json:"setup_cost"`
	HoldingCost         float64 `json:"holding_cost"`
	StockoutCost        float64 `json:"stockout_cost"`
	TotalCost           float64 `json:"total_cost"`
	SetupCostPercent    float64 `json:"setup_cost_percent"`
	HoldingCostPercent  float64 `json:"holding_cost_percent"`
	StockoutCostPercent float64 `json:"stockout_cost_percent"`
	// UnitValueProxy documents the holding-cost basis used when no unit
	// cost is supplied.
	UnitValueProxy float64 `json:"unit_value_proxy"`
	EOQ            float64 `json:"eoq,omitempty"`
}

// DemandMetrics is the profiler output shaped for reporting.
type DemandMetrics struct {
	TotalDemand        float64             `json:"total_demand"`
	MeanDemand         float64             `json:"mean_demand"`
	StdDemand          float64             `json:"std_demand"`
	CV                 float64             `json:"cv"`
	MaxSingleDemand    float64             `json:"max_single_demand"`
	MinSingleDemand    float64             `json:"min_single_demand"`
	EventCount         int                 `json:"event_count"`
	MeanInterval       float64             `json:"mean_interval_days"`
	MinInterval        int                 `json:"min_interval_days"`
	MaxInterval        int                 `json:"max_interval_days"`
	IntervalVariance   float64             `json:"interval_variance"`
	ConcentrationIndex float64             `json:"concentration_index"`
	ConcentrationLevel ConcentrationLevel  `json:"concentration_level"`
	PeakThreshold      float64             `json:"peak_threshold"`
	PeakDates          []string            `json:"peak_dates,omitempty"`
	Predictability     Predictability      `json:"predictability"`
	ABCByEvent         map[string]ABCClass `json:"abc_by_event,omitempty"`
	XYZ                XYZClass            `json:"xyz_class"`
	DemandByMonth      map[string]float64  `json:"demand_by_month,omitempty"`
}

// RiskAnalysis estimates stockout exposure over the period.
type RiskAnalysis struct {
	StockoutProbability      float64 `json:"stockout_probability"`
	ExpectedStockoutsPerYear float64 `json:"expected_stockouts_per_year"`
	ValueAtRisk              float64 `json:"value_at_risk"`
	ConditionalVaR           float64 `json:"conditional_var"`
	DemandUncertaintyCV      float64 `json:"demand_uncertainty_cv"`
	DemandUncertainty        string  `json:"demand_uncertainty"`
}

// SeasonalityMarkers flags gross demand periodicity in the event series.
type SeasonalityMarkers struct {
	Detected bool    `json:"detected"`
	Type     string  `json:"type,omitempty"`
	Strength float64 `json:"strength,omitempty"`
}

// WhatIfScenario reports the cost/safety deltas of one canned variation.
type WhatIfScenario struct {
	Name             string  `json:"name"`
	SafetyStockDelta float64 `json:"safety_stock_delta"`
	CostDelta        float64 `json:"cost_delta"`
	Description      string  `json:"description"`
}

// Recommendation is one rule-derived suggestion, order-stable across runs.
type Recommendation struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// BatchGap describes the spacing between two consecutive arrivals.
type BatchGap struct {
	From    string `json:"from"`
	To      string `json:"to"`
	GapDays int    `json:"gap_days"`
	GapType string `json:"gap_type"`
}

// ProductionEfficiency summarizes batch cadence against the lead time.
type ProductionEfficiency struct {
	AverageBatchSize          float64    `json:"average_batch_size"`
	ProductionLineUtilization float64    `json:"production_line_utilization"`
	BatchGaps                 []BatchGap `json:"batch_gaps,omitempty"`
	LeadTimeCompliance        float64    `json:"lead_time_compliance"`
}

// AnalyticsBundle is the full reporting payload of a plan.
type AnalyticsBundle struct {
	Summary              Summary              `json:"summary"`
	Performance          PerformanceMetrics   `json:"performance_metrics"`
	Costs                CostAnalysis         `json:"cost_analysis"`
	Demand               DemandMetrics        `json:"demand_metrics"`
	Risk                 RiskAnalysis         `json:"risk_analysis"`
	Seasonality          SeasonalityMarkers   `json:"seasonality"`
	WhatIf               []WhatIfScenario     `json:"what_if_scenarios,omitempty"`
	Recommendations      []Recommendation     `json:"recommendations,omitempty"`
	StockEvolution       map[string]float64   `json:"stock_evolution"`
	StockEndOfPeriod     map[string]float64   `json:"stock_end_of_period,omitempty"`
	CriticalPoints       []CriticalPoint      `json:"critical_points,omitempty"`
	OrderDates           []string             `json:"order_dates,omitempty"`
	ProductionEfficiency ProductionEfficiency `json:"production_efficiency"`
}
