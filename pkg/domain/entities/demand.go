package entities

import "time"

// RawDemand is the caller-supplied demand map, keyed by YYYY-MM-DD date
// strings. YYYY-MM month buckets are also accepted and resolve to the first
// day of the month.
type RawDemand map[string]float64

// DemandEvent is a single dated demand inside the planning period. After
// normalization there is exactly one event per date, sorted ascending.
type DemandEvent struct {
	Date     time.Time
	Quantity float64
}

// CoveredDemand records one demand satisfied by a batch.
type CoveredDemand struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// DemandProfile holds the statistics derived from the normalized demand
// series. Zero-valued for an empty series.
type DemandProfile struct {
	TotalDemand     float64
	MeanDemand      float64
	StdDemand       float64
	CV              float64
	MaxSingleDemand float64
	MinSingleDemand float64
	EventCount      int

	// Interval statistics, in days between consecutive demand dates.
	Intervals        []int
	MeanInterval     float64
	MinInterval      int
	MaxInterval      int
	IntervalVariance float64

	// ConcentrationIndex is days-with-demand over period days.
	ConcentrationIndex float64
	ConcentrationLevel ConcentrationLevel

	// PeakThreshold is mean+stdev, or 1.5*mean when stdev is zero.
	PeakThreshold float64
	PeakDates     []string

	Predictability Predictability
	ABCByEvent     map[string]ABCClass
	XYZ            XYZClass

	MeanDailyDemand float64
	PeriodDays      int
}

// ConcentrationLevel buckets the concentration index.
type ConcentrationLevel string

// Concentration levels.
const (
	ConcentrationLow    ConcentrationLevel = "low"
	ConcentrationMedium ConcentrationLevel = "medium"
	ConcentrationHigh   ConcentrationLevel = "high"
)

// Predictability buckets the demand coefficient of variation.
type Predictability string

// Predictability levels.
const (
	PredictabilityHigh   Predictability = "high"
	PredictabilityMedium Predictability = "medium"
	PredictabilityLow    Predictability = "low"
)

// ABCClass labels a single demand event by its cumulative share of total
// demand.
type ABCClass string

// ABC classes.
const (
	ABCClassA ABCClass = "A"
	ABCClassB ABCClass = "B"
	ABCClassC ABCClass = "C"
)

// XYZClass labels the whole series by variability.
type XYZClass string

// XYZ classes.
const (
	XYZClassX XYZClass = "X"
	XYZClassY XYZClass = "Y"
	XYZClassZ XYZClass = "Z"
)
