package services

import "github.com/sporadiq/mrp/pkg/domain/entities"

// SelectStrategy picks the planning strategy from the lead time, with a
// hybrid override when the demand is both highly concentrated and hard to
// predict.
func SelectStrategy(leadtimeDays int, profile entities.DemandProfile) entities.Strategy {
	var strategy entities.Strategy
	switch {
	case leadtimeDays == 0:
		strategy = entities.StrategyJIT
	case leadtimeDays <= 14:
		strategy = entities.StrategyShortLeadtime
	case leadtimeDays <= 45:
		strategy = entities.StrategyMediumLeadtime
	default:
		strategy = entities.StrategyLongHybrid
	}

	if strategy != entities.StrategyJIT &&
		profile.ConcentrationLevel == entities.ConcentrationHigh &&
		profile.Predictability == entities.PredictabilityLow {
		strategy = entities.StrategyLongHybrid
	}
	return strategy
}
