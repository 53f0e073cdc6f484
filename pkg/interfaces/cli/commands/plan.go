package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sporadiq/mrp/pkg/application/dto"
	"github.com/sporadiq/mrp/pkg/application/services"
	"github.com/sporadiq/mrp/pkg/domain/entities"
	"github.com/sporadiq/mrp/pkg/interfaces/cli/output"
	"github.com/sporadiq/mrp/pkg/logger"
)

var (
	planInput  string
	planFormat string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a replenishment plan from a JSON request file",
	Run:   runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planInput, "input", "", "path to the JSON planning request (required)")
	planCmd.Flags().StringVar(&planFormat, "format", "json", "output format: json or table")
	_ = planCmd.MarkFlagRequired("input")
}

func runPlan(cmd *cobra.Command, args []string) {
	log := logger.New(newLogger(""))

	data, err := os.ReadFile(planInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		os.Exit(2)
	}

	var wire dto.PlanRequest
	if err := json.Unmarshal(data, &wire); err != nil {
		emitError(entities.NewInvalidInput("malformed request JSON: %v", err), nil)
		os.Exit(2)
	}

	req, err := wire.ToDomain()
	if err != nil {
		emitError(err, nil)
		os.Exit(2)
	}

	result, err := services.NewPlanService(log).Plan(cmd.Context(), req)
	if err != nil {
		emitError(err, result)
		switch entities.KindOf(err) {
		case entities.ErrKindInvalidInput, entities.ErrKindInfeasibleWindow:
			os.Exit(2)
		default:
			os.Exit(1)
		}
	}

	resp := dto.FromResult(result)
	switch planFormat {
	case "table":
		err = output.WriteTable(os.Stdout, resp)
	default:
		err = output.WriteJSON(os.Stdout, resp)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func emitError(err error, partial *services.PlanResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(dto.FromError(err, partial))
}
