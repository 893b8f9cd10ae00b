package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/estaudit/estaudit/internal/estimate"
	"github.com/estaudit/estaudit/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check <estimate.yaml>",
	Short: "Flag scope gaps in an estimate using the dependency rules",
	Args:  cobra.ExactArgs(1),
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

		est, err := estimate.Load(args[0])
		if err != nil {
			fatal("%v", err)
		}

		report, err := runner.DependencyCheck(ctx, est.Items, ruleSet)
		if err != nil {
			fatal("dependency check failed: %v", err)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("\n%s (run %s)\n\n", cyan("=== Dependency Check ==="), report.RunID)

		if len(report.Candidates) == 0 {
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s No scope gaps flagged across %d line items.\n", green("✓"), len(est.Items))
			return
		}

		red := color.New(color.FgRed, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		for _, c := range report.Candidates {
			marker := yellow("minor")
			if c.Priority == types.PriorityCritical {
				marker = red("critical")
			}
			fmt.Printf("  [%s] %s\n", marker, c.RequiredItem)
			fmt.Printf("      %s\n", c.Reason)
			if len(c.RelatedItemsFound) > 0 {
				fmt.Printf("      triggered by: %v\n", c.RelatedItemsFound)
			}
		}
		fmt.Printf("\n%d potential gap(s) found.\n", len(report.Candidates))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
