package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/estaudit/estaudit/internal/extract"
	"github.com/estaudit/estaudit/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <model-output.json>",
	Short: "Validate model-suggested line items against the catalog",
	Long: `Reads raw model output (JSON, possibly wrapped in markdown fences or
prose), extracts the candidate line items, and validates each against the
reference catalog. Requires --catalog.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if catalogPath == "" {
			fatal("--catalog is required for validation")
		}
		runner, err := newRunner()
		if err != nil {
			fatal("%v", err)
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			fatal("failed to read model output: %v", err)
		}
		cands, err := extract.Candidates(string(raw))
		if err != nil {
			fatal("%v", err)
		}

		outcomes, err := runner.ValidateBatch(ctx, cands)
		if err != nil {
			fatal("validation failed: %v", err)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== Catalog Validation ==="))
		accepted, corrected, rejected := 0, 0, 0
		for i, out := range outcomes {
			var marker string
			switch out.Action {
			case types.ActionAccepted:
				marker = green("accepted ")
				accepted++
			case types.ActionCorrected:
				marker = yellow("corrected")
				corrected++
			case types.ActionRejected:
				marker = red("rejected ")
				rejected++
			}
			fmt.Printf("  %s  %-40s", marker, clip(cands[i].Description, 40))
			if out.ResolvedCode != "" {
				fmt.Printf("  → %s", out.ResolvedCode)
			}
			fmt.Println()
			fmt.Printf("             %s\n", out.Reason)
		}
		fmt.Printf("\n%d accepted, %d corrected, %d rejected.\n", accepted, corrected, rejected)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
