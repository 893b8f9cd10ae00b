// Command estaudit is the reference caller for the estimate reconciliation
// engine: dependency checks, cross-estimate comparison, catalog validation
// of model output, and rule-store maintenance.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/estaudit/estaudit/internal/audit"
	"github.com/estaudit/estaudit/internal/catalog"
	"github.com/estaudit/estaudit/internal/estimate"
	"github.com/estaudit/estaudit/internal/storage"
	"github.com/estaudit/estaudit/internal/storage/sqlite"
	"github.com/estaudit/estaudit/internal/types"
)

var (
	catalogPath string
	dbPath      string
	scope       string
	rulesPath   string
)

var rootCmd = &cobra.Command{
	Use:   "estaudit",
	Short: "Estimate reconciliation and dependency-rule audit tool",
	Long: `estaudit reconciles construction estimates: it pairs line items between
two independently authored estimates, flags scope gaps via user-authored
dependency rules, and validates model-suggested codes against the reference
catalog.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "reference catalog CSV file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", ".estaudit/rules.db", "rule store database path")
	rootCmd.PersistentFlags().StringVar(&scope, "scope", "default", "rule scope (user or organization key)")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "YAML rule seed file (bypasses the rule store)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRunner builds the audit runner: config from the environment, catalog
// from --catalog when given (an empty index otherwise — dependency checks
// do not need one).
func newRunner() (*audit.Runner, error) {
	cfg, err := audit.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	var idx *catalog.Index
	if catalogPath != "" {
		idx, err = catalog.LoadFile(catalogPath)
		if err != nil {
			return nil, err
		}
	} else {
		idx = catalog.BuildIndex(nil)
	}
	return audit.NewRunner(idx, cfg)
}

// loadRuleSet loads the scope's rules: from a YAML seed file when --rules is
// given, otherwise from the sqlite store. A missing store means an empty
// rule set, not an error — a fresh checkout should still be able to compare
// estimates.
func loadRuleSet(ctx context.Context) (types.RuleSet, error) {
	if rulesPath != "" {
		seed, err := estimate.LoadSeed(rulesPath)
		if err != nil {
			return types.RuleSet{}, err
		}
		return seedToRuleSet(seed)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return types.RuleSet{}, nil
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		return types.RuleSet{}, err
	}
	defer store.Close()

	set, skipped, err := storage.LoadRuleSet(ctx, store, scope)
	if err != nil {
		return types.RuleSet{}, err
	}
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped rule record: %v\n", s)
	}
	return set, nil
}

// seedToRuleSet validates a YAML seed into a typed rule set. Invalid entries
// are warnings, matching the store's isolate-and-continue behavior.
func seedToRuleSet(seed estimate.RuleSeed) (types.RuleSet, error) {
	var set types.RuleSet
	for i, rule := range seed.Rules {
		if rule.Priority == "" {
			rule.Priority = types.PriorityMinor
		}
		if err := rule.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipped seed rule %d: %v\n", i+1, err)
			continue
		}
		set.Rules = append(set.Rules, rule)
	}
	for i, pair := range seed.Synonyms {
		if err := pair.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipped seed synonym %d: %v\n", i+1, err)
			continue
		}
		set.Synonyms = append(set.Synonyms, pair)
	}
	set.Hints = append(set.Hints, seed.Hints...)
	return set, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
