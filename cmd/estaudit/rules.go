package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/estaudit/estaudit/internal/estimate"
	"github.com/estaudit/estaudit/internal/storage/sqlite"
	"github.com/estaudit/estaudit/internal/types"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and maintain the local rule store",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rule records in the current scope",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := sqlite.New(dbPath)
		if err != nil {
			fatal("%v", err)
		}
		defer store.Close()

		records, err := store.ListRuleRecords(context.Background(), scope)
		if err != nil {
			fatal("%v", err)
		}
		if len(records) == 0 {
			fmt.Printf("No rule records in scope %q.\n", scope)
			return
		}
		for _, rec := range records {
			fmt.Printf("%4d  %-12s %s\n", rec.ID, rec.RuleType, string(rec.Payload))
		}
	},
}

var rulesSeedFile string

var rulesAddCmd = &cobra.Command{
	Use:   "add --file <seed.yaml>",
	Short: "Load rules and synonyms from a YAML seed file into the store",
	Run: func(cmd *cobra.Command, args []string) {
		if rulesSeedFile == "" {
			fatal("--file is required")
		}
		seed, err := estimate.LoadSeed(rulesSeedFile)
		if err != nil {
			fatal("%v", err)
		}

		store, err := sqlite.New(dbPath)
		if err != nil {
			fatal("%v", err)
		}
		defer store.Close()

		ctx := context.Background()
		added := 0
		save := func(ruleType types.RuleType, payload any) {
			data, err := json.Marshal(payload)
			if err != nil {
				fatal("failed to encode %s payload: %v", ruleType, err)
			}
			rec := types.RuleRecord{RuleType: ruleType, Scope: scope, Payload: data}
			// Round-trip through the typed boundary so malformed seeds are
			// caught before they land in the store.
			var probe types.RuleSet
			if err := probe.AddRecord(rec); err != nil {
				fatal("%v", err)
			}
			if err := store.SaveRuleRecord(ctx, &rec); err != nil {
				fatal("%v", err)
			}
			added++
		}

		for _, rule := range seed.Rules {
			if rule.Priority == "" {
				rule.Priority = types.PriorityMinor
			}
			save(types.RuleTypeDependency, rule)
		}
		for _, pair := range seed.Synonyms {
			save(types.RuleTypeSynonym, pair)
		}
		for _, hint := range seed.Hints {
			save(types.RuleTypePromptHint, hint)
		}
		fmt.Printf("Added %d record(s) to scope %q.\n", added, scope)
	},
}

var rulesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a rule record by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal("invalid record id %q", args[0])
		}
		store, err := sqlite.New(dbPath)
		if err != nil {
			fatal("%v", err)
		}
		defer store.Close()

		if err := store.DeleteRuleRecord(context.Background(), id); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Deleted rule record %d.\n", id)
	},
}

func init() {
	rulesAddCmd.Flags().StringVar(&rulesSeedFile, "file", "", "YAML seed file with rules/synonyms/hints")
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesRmCmd)
	rootCmd.AddCommand(rulesCmd)
}
