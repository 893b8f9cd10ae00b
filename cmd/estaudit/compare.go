package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/estaudit/estaudit/internal/estimate"
	"github.com/estaudit/estaudit/internal/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare <a.yaml> <b.yaml>",
	Short: "Pair line items between two estimates and report discrepancies",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		runner, err := newRunner()
		if err != nil {
			fatal("%v", err)
		}
		ruleSet, err := loadRuleSet(ctx)
		if err != nil {
			fatal("%v", err)
		}

		a, err := estimate.Load(args[0])
		if err != nil {
			fatal("%v", err)
		}
		b, err := estimate.Load(args[1])
		if err != nil {
			fatal("%v", err)
		}

		report, err := runner.Compare(ctx, a.Items, b.Items, ruleSet)
		if err != nil {
			fatal("comparison failed: %v", err)
		}
		res := report.Result

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("\n%s (run %s)\n\n", cyan("=== Estimate Comparison ==="), report.RunID)
		fmt.Printf("Matched pairs: %d\n", len(res.Pairs))
		for _, p := range res.Pairs {
			fmt.Printf("  %.1f  %-34s ↔ %-34s (%s)\n",
				p.Confidence, clip(p.SourceItem.Description, 34), clip(p.TargetItem.Description, 34), p.Basis)
		}

		printResidual(fmt.Sprintf("Only in %s", nameOr(a.Name, args[0])), res.OnlyInA)
		printResidual(fmt.Sprintf("Only in %s", nameOr(b.Name, args[1])), res.OnlyInB)
	},
}

func printResidual(heading string, items []types.LineItem) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("\n%s: %d\n", yellow(heading), len(items))
	for _, item := range items {
		desc := item.Description
		if desc == "" {
			desc = "(no description)"
		}
		fmt.Printf("  %-12s %s  qty %.2f @ $%.2f\n", item.Code, clip(desc, 50), item.Quantity, item.UnitPrice)
	}
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

func clip(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
