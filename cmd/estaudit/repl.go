package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/estaudit/estaudit/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive shell for catalog search and rule dry-runs",
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

		shell, err := repl.New(&repl.Config{Runner: runner, RuleSet: ruleSet})
		if err != nil {
			fatal("%v", err)
		}
		if err := shell.Run(ctx); err != nil {
			fatal("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
