package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/estaudit/estaudit/internal/catalog"
	"github.com/estaudit/estaudit/internal/match"
	"github.com/estaudit/estaudit/internal/rules"
	"github.com/estaudit/estaudit/internal/types"
	"github.com/estaudit/estaudit/internal/validate"
)

// Runner executes audits against one catalog index. The index is built once
// and shared; everything else (line items, rule sets) arrives fresh per
// call, so concurrent audits for different users are fully independent.
type Runner struct {
	idx *catalog.Index
	cfg Config
}

// NewRunner creates a runner over the given catalog index.
func NewRunner(idx *catalog.Index, cfg Config) (*Runner, error) {
	if idx == nil {
		return nil, fmt.Errorf("catalog index is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runner config: %w", err)
	}
	return &Runner{idx: idx, cfg: cfg}, nil
}

// Index exposes the shared catalog index for read-only use (search commands,
// the REPL).
func (r *Runner) Index() *catalog.Index {
	return r.idx
}

// DependencyReport is the output of one dependency-check run.
type DependencyReport struct {
	RunID      string                       `json:"run_id"`
	Candidates []types.MissingItemCandidate `json:"candidates"`
	// SkippedRules carries the messages of rules that were malformed and
	// skipped. The run itself still succeeds.
	SkippedRules []string `json:"skipped_rules,omitempty"`
}

// DependencyCheck evaluates the scope's dependency rules against one
// estimate and returns deduplicated missing-item candidates in rule order.
// Malformed rules are skipped and reported, never fatal.
func (r *Runner) DependencyCheck(ctx context.Context, items []types.LineItem, set types.RuleSet) (DependencyReport, error) {
	if err := ctx.Err(); err != nil {
		return DependencyReport{}, err
	}

	report := DependencyReport{RunID: uuid.NewString()}

	candidates, err := rules.Evaluate(items, set.Rules, set.Synonyms)
	if err != nil {
		// Evaluate isolates bad rules; the joined error is advisory.
		report.SkippedRules = append(report.SkippedRules, err.Error())
	}
	report.Candidates = DedupeCandidates(candidates, set.Synonyms)
	return report, nil
}

// CompareReport is the output of one cross-estimate comparison run. The
// result is advisory context for the discrepancy report built upstream, not
// the final answer.
type CompareReport struct {
	RunID  string            `json:"run_id"`
	Result types.MatchResult `json:"result"`
}

// Compare pairs the line items of two estimates using the scope's synonyms.
func (r *Runner) Compare(ctx context.Context, a, b []types.LineItem, set types.RuleSet) (CompareReport, error) {
	if err := ctx.Err(); err != nil {
		return CompareReport{}, err
	}
	opts := match.Options{PriceTolerance: r.cfg.PriceTolerance}
	return CompareReport{
		RunID:  uuid.NewString(),
		Result: match.MatchWithOptions(a, b, set.Synonyms, opts),
	}, nil
}

// ValidateBatch validates externally sourced candidates against the catalog,
// fanning out across a bounded worker pool. Outcomes are returned in input
// order, one per candidate.
func (r *Runner) ValidateBatch(ctx context.Context, cands []validate.Candidate) ([]types.ValidationOutcome, error) {
	outcomes := make([]types.ValidationOutcome, len(cands))
	th := validate.Thresholds{MinSearchScore: r.cfg.MinSearchScore, MinSimilarity: r.cfg.MinSimilarity}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.ValidateWorkers)
	for i, cand := range cands {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = validate.ValidateWithThresholds(cand, r.idx, th)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
