package services

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sporadiq/mrp/pkg/domain/calendar"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

func newService(t *testing.T) *PlanService {
	t.Helper()
	return NewPlanService(zerolog.Nop())
}

func mustPlan(t *testing.T, req *PlanRequest) *PlanResult {
	t.Helper()
	result, err := newService(t).Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	return result
}

func TestPlan_JITSporadicDemand(t *testing.T) {
	params := entities.DefaultParameters()
	params.LeadtimeDays = 0
	params.SafetyMarginPercent = 0
	params.SafetyDays = 0
	params.PeriodStart = d(t, "2025-01-01")
	params.PeriodEnd = d(t, "2025-01-31")
	params.StartCutoff = d(t, "2025-01-01")
	params.EndCutoff = d(t, "2025-01-31")

	result := mustPlan(t, &PlanRequest{
		Demand: entities.RawDemand{"2025-01-10": 100, "2025-01-20": 150},
		Params: params,
	})

	if len(result.Batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(result.Batches))
	}
	wantQty := []float64{100, 150}
	wantDate := []string{"2025-01-10", "2025-01-20"}
	for i, b := range result.Batches {
		if b.Quantity != wantQty[i] {
			t.Errorf("batch %d quantity = %g, want %g", i, b.Quantity, wantQty[i])
		}
		if calendar.Format(b.ArrivalDate) != wantDate[i] || !b.OrderDate.Equal(b.ArrivalDate) {
			t.Errorf("batch %d must order and arrive on %s", i, wantDate[i])
		}
	}
	if result.Analytics.Summary.DemandFulfillmentRate != 100 {
		t.Errorf("fulfillment rate = %g, want 100", result.Analytics.Summary.DemandFulfillmentRate)
	}
	if result.Analytics.Summary.Strategy != "jit" {
		t.Errorf("strategy = %s, want jit", result.Analytics.Summary.Strategy)
	}
}

func TestPlan_ShortLeadtimeConsolidatesGroup(t *testing.T) {
	params := baseParams(t)
	params.LeadtimeDays = 5

	result := mustPlan(t, &PlanRequest{
		Demand: entities.RawDemand{
			"2025-03-10": 400,
			"2025-03-25": 300,
			"2025-04-20": 200,
		},
		Params: params,
	})

	if len(result.Batches) != 1 {
		t.Fatalf("expected a single consolidated batch, got %d", len(result.Batches))
	}
	b := result.Batches[0]
	// 900 shortfall plus the 8% safety margin.
	if math.Abs(b.Quantity-972) > 1e-9 {
		t.Errorf("quantity = %g, want 972", b.Quantity)
	}
	// Order backs off leadtime plus safety days from the first demand.
	if calendar.Format(b.OrderDate) != "2025-03-03" {
		t.Errorf("order date = %s, want 2025-03-03", calendar.Format(b.OrderDate))
	}
	if calendar.Format(b.ArrivalDate) != "2025-03-08" {
		t.Errorf("arrival date = %s, want 2025-03-08", calendar.Format(b.ArrivalDate))
	}
	if !b.Analytics.ConsolidatedGroup || b.Analytics.GroupSize != 3 {
		t.Errorf("expected a 3-event group, got consolidated=%v size=%d",
			b.Analytics.ConsolidatedGroup, b.Analytics.GroupSize)
	}
	if result.Analytics.Summary.StockoutDays != 0 {
		t.Errorf("no stockouts expected, got %d days", result.Analytics.Summary.StockoutDays)
	}
}

func TestPlan_LongLeadtimeSplitsOversizedGroup(t *testing.T) {
	params := entities.DefaultParameters()
	params.LeadtimeDays = 70
	params.InitialStock = 1908
	params.PeriodStart = d(t, "2025-05-01")
	params.PeriodEnd = d(t, "2025-12-31")
	params.StartCutoff = d(t, "2025-04-01")
	params.EndCutoff = d(t, "2025-12-31")

	result := mustPlan(t, &PlanRequest{
		Demand: entities.RawDemand{
			"2025-07-05": 4000,
			"2025-08-20": 4000,
			"2025-10-17": 4000,
		},
		Params: params,
	})

	if len(result.Batches) != 2 {
		t.Fatalf("expected 2 split batches, got %d", len(result.Batches))
	}
	// Group quantity 10899.36 exceeds max 10000; the chosen distribution
	// front-weights the first arrival to keep the stock line positive.
	if math.Abs(result.Batches[0].Quantity-7266.24) > 1e-6 ||
		math.Abs(result.Batches[1].Quantity-3633.12) > 1e-6 {
		t.Errorf("quantities = %g/%g, want 7266.24/3633.12",
			result.Batches[0].Quantity, result.Batches[1].Quantity)
	}
	if calendar.Format(result.Batches[0].ArrivalDate) != "2025-07-03" ||
		calendar.Format(result.Batches[1].ArrivalDate) != "2025-10-17" {
		t.Errorf("arrivals = %s/%s, want 2025-07-03/2025-10-17",
			calendar.Format(result.Batches[0].ArrivalDate),
			calendar.Format(result.Batches[1].ArrivalDate))
	}
	for i, b := range result.Batches {
		if b.Quantity > params.MaxBatchSize {
			t.Errorf("batch %d exceeds max batch size: %g", i, b.Quantity)
		}
		if !b.Analytics.LongLeadtimeOptimization {
			t.Errorf("batch %d missing long-lead optimization flag", i)
		}
	}
	for date, stock := range result.Analytics.StockEvolution {
		if stock < 0 {
			t.Errorf("negative stock %g on %s", stock, date)
		}
	}
}

func TestPlan_ExactQuantityMatchZeroesFinalStock(t *testing.T) {
	params := entities.DefaultParameters()
	params.LeadtimeDays = 50
	params.ExactQuantityMatch = true
	params.PeriodStart = d(t, "2025-06-01")
	params.PeriodEnd = d(t, "2025-12-31")
	params.StartCutoff = d(t, "2025-05-01")
	params.EndCutoff = d(t, "2025-12-31")

	result := mustPlan(t, &PlanRequest{
		Demand: entities.RawDemand{
			"2025-07-01": 6500,
			"2025-08-01": 4500,
			"2025-09-01": 2555,
		},
		Params: params,
	})

	total := 0.0
	for _, b := range result.Batches {
		total += b.Quantity
		if !b.Analytics.ExactQuantityMode {
			t.Error("batch missing exact-quantity flag")
		}
	}
	if math.Abs(total-13555) > 1e-6 {
		t.Errorf("total produced = %.9f, want 13555 within 1e-6", total)
	}
	if math.Abs(result.Analytics.Summary.FinalStock) > 1e-6 {
		t.Errorf("final stock = %g, want 0", result.Analytics.Summary.FinalStock)
	}
}

func TestPlan_InformativeBatchLeavesAnalyticsUntouched(t *testing.T) {
	params := baseParams(t)
	params.LeadtimeDays = 5
	params.InitialStock = 150
	demand := entities.RawDemand{"2025-01-10": 100}

	plain := mustPlan(t, &PlanRequest{ID: "base", Demand: demand, Params: params})
	if len(plain.Batches) != 0 {
		t.Fatalf("stock covers demand, expected no batches, got %d", len(plain.Batches))
	}

	params.ForceInformativeBatches = true
	forced := mustPlan(t, &PlanRequest{ID: "base", Demand: demand, Params: params})
	if len(forced.Batches) != 1 {
		t.Fatalf("expected the informative batch, got %d batches", len(forced.Batches))
	}
	info := forced.Batches[0]
	if !info.Analytics.InformativeBatch || info.Analytics.ActualNeed != "none" {
		t.Errorf("informative flags missing: %+v", info.Analytics)
	}
	if info.Quantity != 100 {
		t.Errorf("informative quantity = %g, want the total demand 100", info.Quantity)
	}
	if !reflect.DeepEqual(plain.Analytics, forced.Analytics) {
		t.Error("informative batch must not change any analytics figure")
	}
}

func TestPlan_InformativeBatchSymbolicQuantity(t *testing.T) {
	params := baseParams(t)
	params.LeadtimeDays = 5
	params.InitialStock = 150
	params.ForceInformativeBatches = true

	result := mustPlan(t, &PlanRequest{Demand: entities.RawDemand{}, Params: params})

	if len(result.Batches) != 1 {
		t.Fatalf("expected the symbolic informative batch, got %d", len(result.Batches))
	}
	b := result.Batches[0]
	if b.Quantity != 50 {
		t.Errorf("symbolic quantity = %g, want 50", b.Quantity)
	}
	if calendar.Format(b.ArrivalDate) != "2025-07-02" {
		t.Errorf("arrival = %s, want mid-period 2025-07-02", calendar.Format(b.ArrivalDate))
	}
	if result.Analytics.Summary.FinalStock != 150 {
		t.Errorf("final stock = %g, want untouched 150", result.Analytics.Summary.FinalStock)
	}
	if result.Analytics.Summary.DemandEvents != 0 {
		t.Errorf("demand events = %d, want 0", result.Analytics.Summary.DemandEvents)
	}
}

func TestPlan_WideGapsStayInOneGroup(t *testing.T) {
	params := baseParams(t)
	params.LeadtimeDays = 30
	params.StartCutoff = d(t, "2024-12-01")
	params.MaxGapDays = 365

	result := mustPlan(t, &PlanRequest{
		Demand: entities.RawDemand{
			"2025-01-15": 200,
			"2025-02-20": 150,
			"2025-03-30": 180,
			"2025-05-10": 220,
			"2025-06-25": 250,
		},
		Params: params,
	})

	if len(result.Batches) != 1 {
		t.Fatalf("expected one batch across the sparse series, got %d", len(result.Batches))
	}
	b := result.Batches[0]
	if len(b.Analytics.DemandsCovered) != 5 {
		t.Errorf("covered %d demands, want 5", len(b.Analytics.DemandsCovered))
	}
	if b.ArrivalDate.After(d(t, "2025-01-15")) {
		t.Errorf("arrival %s after first demand", calendar.Format(b.ArrivalDate))
	}
	if b.Analytics.IsCritical {
		t.Error("cutoff leaves room to order in time, batch must not be critical")
	}
}

func TestPlan_InfeasibleWindow(t *testing.T) {
	params := baseParams(t)
	params.LeadtimeDays = 60
	params.StartCutoff = d(t, "2025-11-15")
	params.EndCutoff = d(t, "2025-12-31")

	result, err := newService(t).Plan(context.Background(), &PlanRequest{
		Demand: entities.RawDemand{"2025-12-01": 100},
		Params: params,
	})

	if entities.KindOf(err) != entities.ErrKindInfeasibleWindow {
		t.Fatalf("error kind = %v, want infeasible window (%v)", entities.KindOf(err), err)
	}
	if result == nil {
		t.Fatal("infeasible window must still return the no-batch analytics")
	}
	if result.Analytics.Summary.StockoutDays == 0 {
		t.Error("unserved demand should surface as stockout days")
	}
}

func TestPlan_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlanRequest)
	}{
		{"empty_demand", func(r *PlanRequest) { r.Demand = entities.RawDemand{} }},
		{"negative_stock", func(r *PlanRequest) { r.Params.InitialStock = -1 }},
		{"malformed_date", func(r *PlanRequest) { r.Demand = entities.RawDemand{"10/01/2025": 100} }},
		{"bad_service_level", func(r *PlanRequest) { r.Params.ServiceLevel = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &PlanRequest{
				Demand: entities.RawDemand{"2025-03-10": 100},
				Params: baseParams(t),
			}
			req.Params.LeadtimeDays = 5
			tt.mutate(req)

			_, err := newService(t).Plan(context.Background(), req)
			if entities.KindOf(err) != entities.ErrKindInvalidInput {
				t.Errorf("error kind = %v, want invalid input (%v)", entities.KindOf(err), err)
			}
		})
	}
}

func TestPlan_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := baseParams(t)
	params.LeadtimeDays = 5
	_, err := newService(t).Plan(ctx, &PlanRequest{
		Demand: entities.RawDemand{"2025-03-10": 100},
		Params: params,
	})
	if err == nil {
		t.Fatal("expected an error for a canceled context")
	}
}

func TestPlan_Deterministic(t *testing.T) {
	req := func() *PlanRequest {
		params := baseParams(t)
		params.LeadtimeDays = 20
		return &PlanRequest{
			ID: "fixed",
			Demand: entities.RawDemand{
				"2025-02-05": 300,
				"2025-04-18": 700,
				"2025-09-02": 450,
			},
			Params: params,
		}
	}

	first := mustPlan(t, req())
	second := mustPlan(t, req())
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical plans")
	}
}

func TestPlan_AssignsPlanID(t *testing.T) {
	params := baseParams(t)
	params.LeadtimeDays = 5
	result := mustPlan(t, &PlanRequest{
		Demand: entities.RawDemand{"2025-03-10": 100},
		Params: params,
	})
	if result.ID == "" {
		t.Error("a fresh plan ID should be issued when the request has none")
	}
}
