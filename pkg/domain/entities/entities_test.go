package entities

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func validParams() PlanningParameters {
	p := DefaultParameters()
	p.PeriodStart = date("2025-01-01")
	p.PeriodEnd = date("2025-12-31")
	p.StartCutoff = date("2025-01-01")
	p.EndCutoff = date("2025-12-31")
	p.LeadtimeDays = 10
	return p
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlanningParameters)
		wantErr bool
	}{
		{"defaults_ok", func(p *PlanningParameters) {}, false},
		{"negative_stock", func(p *PlanningParameters) { p.InitialStock = -1 }, true},
		{"negative_leadtime", func(p *PlanningParameters) { p.LeadtimeDays = -1 }, true},
		{"missing_period", func(p *PlanningParameters) { p.PeriodStart = time.Time{} }, true},
		{"inverted_period", func(p *PlanningParameters) {
			p.PeriodStart = date("2025-06-01")
			p.PeriodEnd = date("2025-01-01")
		}, true},
		{"inverted_cutoffs", func(p *PlanningParameters) {
			p.StartCutoff = date("2025-06-01")
			p.EndCutoff = date("2025-01-01")
		}, true},
		{"bad_gap", func(p *PlanningParameters) { p.MaxGapDays = 0 }, true},
		{"bad_service_level", func(p *PlanningParameters) { p.ServiceLevel = 1.0 }, true},
		{"max_below_min", func(p *PlanningParameters) {
			p.MinBatchSize = 500
			p.MaxBatchSize = 100
		}, true},
		{"low_multiplier", func(p *PlanningParameters) { p.MaxBatchMultiplier = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && KindOf(err) != ErrKindInvalidInput {
				t.Errorf("expected invalid_input kind, got %v", KindOf(err))
			}
		})
	}
}

func TestWindowFeasible(t *testing.T) {
	p := validParams()
	p.StartCutoff = date("2025-12-01")
	p.EndCutoff = date("2025-12-31")

	p.LeadtimeDays = 30
	if !p.WindowFeasible() {
		t.Error("30-day lead time should fit a 30-day window")
	}
	p.LeadtimeDays = 31
	if p.WindowFeasible() {
		t.Error("31-day lead time cannot fit a 30-day window")
	}
}

func TestEffectiveMinBatch(t *testing.T) {
	p := validParams()

	p.MinBatchSize = 0.5
	if got := p.EffectiveMinBatch(); got != 1 {
		t.Errorf("floor should be 1, got %g", got)
	}

	p.MinBatchSize = 50
	if got := p.EffectiveMinBatch(); got != 50 {
		t.Errorf("user floor should win, got %g", got)
	}

	p.ExactQuantityMatch = true
	if got := p.EffectiveMinBatch(); got != 0 {
		t.Errorf("exact mode should relax the floor to 0, got %g", got)
	}
}

func TestStrategyString(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     string
	}{
		{StrategyJIT, "jit"},
		{StrategyShortLeadtime, "short_leadtime"},
		{StrategyMediumLeadtime, "medium_leadtime"},
		{StrategyLongHybrid, "long_leadtime_hybrid"},
		{Strategy(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.strategy.String(); got != tt.want {
			t.Errorf("Strategy(%d).String() = %q, want %q", tt.strategy, got, tt.want)
		}
	}
}

func TestPlanningErrorKinds(t *testing.T) {
	inner := NewInvalidInput("empty demand map")
	wrapped := fmt.Errorf("failed to normalize demand: %w", inner)

	if KindOf(wrapped) != ErrKindInvalidInput {
		t.Errorf("kind should survive wrapping, got %v", KindOf(wrapped))
	}
	var pe *PlanningError
	if !errors.As(wrapped, &pe) {
		t.Fatal("errors.As should find the planning error")
	}
	if pe.Msg != "empty demand map" {
		t.Errorf("unexpected message %q", pe.Msg)
	}

	if KindOf(errors.New("plain")) != ErrKindInternal {
		t.Error("untyped errors should default to internal")
	}
	if ErrKindInfeasibleWindow.String() != "infeasible_window" {
		t.Errorf("unexpected kind name %q", ErrKindInfeasibleWindow)
	}
}

func TestConsolidationDecisionQuality(t *testing.T) {
	d := ConsolidationDecision{NetSavings: 300}
	if q := d.Quality(250); q != ConsolidationHigh {
		t.Errorf("expected high quality, got %v", q)
	}
	d.NetSavings = 150
	if q := d.Quality(250); q != ConsolidationMedium {
		t.Errorf("expected medium quality, got %v", q)
	}
	d.NetSavings = 10
	if q := d.Quality(250); q != ConsolidationLow {
		t.Errorf("expected low quality, got %v", q)
	}
}
