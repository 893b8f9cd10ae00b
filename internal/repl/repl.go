// Package repl provides an interactive shell for exploring a loaded catalog
// and dry-running dependency rules before committing them to a scope.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/estaudit/estaudit/internal/audit"
	"github.com/estaudit/estaudit/internal/estimate"
	"github.com/estaudit/estaudit/internal/normalize"
	"github.com/estaudit/estaudit/internal/types"
)

// REPL represents the interactive shell.
type REPL struct {
	runner   *audit.Runner
	ruleSet  types.RuleSet
	rl       *readline.Instance
	ctx      context.Context
	commands map[string]CommandHandler
}

// CommandHandler handles a specific command.
type CommandHandler func(args []string) error

// Config holds REPL configuration.
type Config struct {
	Runner  *audit.Runner
	RuleSet types.RuleSet
}

// New creates a new REPL instance.
func New(cfg *Config) (*REPL, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("audit runner is required")
	}
	r := &REPL{
		runner:   cfg.Runner,
		ruleSet:  cfg.RuleSet,
		commands: make(map[string]CommandHandler),
	}
	r.registerCommands()
	return r, nil
}

// Run starts the REPL loop.
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("estaudit> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.processInput(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
		}
	}
}

// processInput processes a single line of input.
func (r *REPL) processInput(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	if handler, ok := r.commands[parts[0]]; ok {
		return handler(parts[1:])
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s Unknown command %q. Use 'help' for available commands.\n", yellow("Note:"), parts[0])
	return nil
}

func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["?"] = r.cmdHelp
	r.commands["exit"] = r.cmdExit
	r.commands["quit"] = r.cmdExit
	r.commands["search"] = r.cmdSearch
	r.commands["lookup"] = r.cmdLookup
	r.commands["term"] = r.cmdTerm
	r.commands["check"] = r.cmdCheck
	r.commands["match"] = r.cmdMatch
	r.commands["rules"] = r.cmdRules
}

func (r *REPL) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", cyan("estaudit interactive shell"))
	fmt.Printf("Catalog loaded: %d entries. Rules: %d, synonyms: %d.\n",
		r.runner.Index().Len(), len(r.ruleSet.Rules), len(r.ruleSet.Synonyms))
	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()
}

func (r *REPL) cmdHelp(args []string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s\n\n", cyan("Available Commands:"))
	commands := []struct{ name, desc string }{
		{"search <query...>", "Search the catalog by keywords"},
		{"lookup <code>", "Look up a catalog entry by code"},
		{"term <text...>", "Show normalized form and synonym variants"},
		{"check <estimate.yaml>", "Run the dependency rules against an estimate"},
		{"match <a.yaml> <b.yaml>", "Compare two estimates"},
		{"rules", "List the loaded dependency rules"},
		{"help, ?", "Show this help message"},
		{"exit, quit", "Exit the shell"},
	}
	for _, cmd := range commands {
		fmt.Printf("  %s  %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Println()
	return nil
}

func (r *REPL) cmdExit(args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s Goodbye!\n", green("✓"))
	r.rl.Close()
	return io.EOF
}

func (r *REPL) cmdSearch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: search <query...>")
	}
	hits := r.runner.Index().SearchByKeyword(strings.Join(args, " "), 10)
	if len(hits) == 0 {
		fmt.Println("No catalog entries match.")
		return nil
	}
	for i, e := range hits {
		fmt.Printf("  %2d. %-12s %s\n", i+1, e.Code, e.Description)
	}
	return nil
}

func (r *REPL) cmdLookup(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: lookup <code>")
	}
	entry, ok := r.runner.Index().LookupByCode(args[0])
	if !ok {
		fmt.Printf("Code %s not found in catalog.\n", args[0])
		return nil
	}
	fmt.Printf("  %-12s %s", entry.Code, entry.Description)
	if entry.Category != "" {
		fmt.Printf("  [%s]", entry.Category)
	}
	if entry.Unit != "" {
		fmt.Printf("  (%s)", entry.Unit)
	}
	fmt.Println()
	return nil
}

func (r *REPL) cmdTerm(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: term <text...>")
	}
	text := strings.Join(args, " ")
	for i, v := range normalize.ExpandSynonyms(text, r.ruleSet.Synonyms) {
		if i == 0 {
			fmt.Printf("  normalized: %q\n", v)
			continue
		}
		fmt.Printf("  variant:    %q\n", v)
	}
	return nil
}

func (r *REPL) cmdCheck(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: check <estimate.yaml>")
	}
	est, err := estimate.Load(args[0])
	if err != nil {
		return err
	}
	report, err := r.runner.DependencyCheck(r.ctx, est.Items, r.ruleSet)
	if err != nil {
		return err
	}
	if len(report.Candidates) == 0 {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s No scope gaps flagged.\n", green("✓"))
		return nil
	}
	for _, c := range report.Candidates {
		marker := color.New(color.FgYellow).SprintFunc()("minor")
		if c.Priority == types.PriorityCritical {
			marker = color.New(color.FgRed).SprintFunc()("critical")
		}
		fmt.Printf("  [%s] %s: %s\n", marker, c.RequiredItem, c.Reason)
	}
	return nil
}

func (r *REPL) cmdMatch(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: match <a.yaml> <b.yaml>")
	}
	a, err := estimate.Load(args[0])
	if err != nil {
		return err
	}
	b, err := estimate.Load(args[1])
	if err != nil {
		return err
	}
	report, err := r.runner.Compare(r.ctx, a.Items, b.Items, r.ruleSet)
	if err != nil {
		return err
	}
	res := report.Result
	fmt.Printf("  %d pairs, %d only in A, %d only in B\n", len(res.Pairs), len(res.OnlyInA), len(res.OnlyInB))
	for _, p := range res.Pairs {
		fmt.Printf("    %.1f %-28s ↔ %-28s (%s)\n", p.Confidence,
			truncate(p.SourceItem.Description, 28), truncate(p.TargetItem.Description, 28), p.Basis)
	}
	return nil
}

func (r *REPL) cmdRules(args []string) error {
	if len(r.ruleSet.Rules) == 0 {
		fmt.Println("No dependency rules loaded.")
		return nil
	}
	for i, rule := range r.ruleSet.Rules {
		fmt.Printf("  %2d. [%s/%s] missing %q when %v without %v\n",
			i+1, rule.Category, rule.Priority, rule.MissingItem, rule.Trigger.Keywords, rule.Required.Keywords)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
