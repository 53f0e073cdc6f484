// Package output renders plan results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/sporadiq/mrp/pkg/application/dto"
	"github.com/sporadiq/mrp/pkg/domain/entities"
)

// WriteJSON emits the response as indented JSON.
func WriteJSON(w io.Writer, resp *dto.PlanResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

// WriteTable renders the batches and headline figures as a table.
func WriteTable(w io.Writer, resp *dto.PlanResponse) error {
	summary := resp.Analytics.Summary
	bold := color.New(color.Bold)

	bold.Fprintf(w, "Plan %s (strategy %s)\n\n", resp.ID, summary.Strategy)

	table := tablewriter.NewTable(w)
	table.Header([]string{"#", "Order", "Arrival", "Quantity", "Urgency", "Covers", "Flags"})
	for i, b := range resp.Batches {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			b.OrderDate,
			b.ArrivalDate,
			fmt.Sprintf("%.2f", b.Quantity),
			string(b.Analytics.UrgencyLevel),
			fmt.Sprintf("%d demand(s)", len(b.Analytics.DemandsCovered)),
			batchFlags(b.Analytics),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal produced: %.2f  Demand: %.2f  Final stock: %.2f\n",
		summary.TotalProduced, summary.TotalDemand, summary.FinalStock)
	fmt.Fprintf(w, "Fulfillment: %.1f%%  Minimum stock: %.2f on %s\n",
		summary.DemandFulfillmentRate, summary.MinimumStock, summary.MinimumStockDate)

	if summary.StockoutDays > 0 {
		color.New(color.FgRed).Fprintf(w, "Stockout on %d day(s)\n", summary.StockoutDays)
	}
	for _, rec := range resp.Analytics.Recommendations {
		color.New(color.FgYellow).Fprintf(w, "[%s] %s\n", rec.Priority, rec.Message)
	}
	return nil
}

func batchFlags(a entities.BatchAnalytics) string {
	switch {
	case a.InformativeBatch:
		return "informative"
	case a.ExcessProduction:
		return "excess"
	case a.IsCritical:
		return "critical"
	case a.ConsolidatedGroup:
		return "consolidated"
	case a.LongLeadtimeOptimization:
		return "long-lead"
	default:
		return ""
	}
}
