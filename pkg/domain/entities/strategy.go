package entities

import "fmt"

// Strategy selects the planning behavior for a lead-time band.
type Strategy int

// Strategy bands by lead time in days: 0, 1-14, 15-45, >45.
const (
	StrategyJIT Strategy = iota
	StrategyShortLeadtime
	StrategyMediumLeadtime
	StrategyLongHybrid
)

// String returns the wire name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyJIT:
		return "jit"
	case StrategyShortLeadtime:
		return "short_leadtime"
	case StrategyMediumLeadtime:
		return "medium_leadtime"
	case StrategyLongHybrid:
		return "long_leadtime_hybrid"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so the strategy renders as
// its wire name inside JSON payloads.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, the inverse of
// MarshalText, so the wire name decodes back into the strategy.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "jit":
		*s = StrategyJIT
	case "short_leadtime":
		*s = StrategyShortLeadtime
	case "medium_leadtime":
		*s = StrategyMediumLeadtime
	case "long_leadtime_hybrid":
		*s = StrategyLongHybrid
	default:
		return fmt.Errorf("unknown strategy %q", string(text))
	}
	return nil
}
