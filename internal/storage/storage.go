// Package storage defines the read/write boundary for persisted rule
// records. Rules, synonyms, and prompt hints are authored elsewhere (a CRUD
// surface outside this repository) and stored as opaque (rule_type, scope,
// payload) records; the engine only ever consumes the parsed form.
package storage

import (
	"context"
	"fmt"

	"github.com/estaudit/estaudit/internal/types"
)

// Storage is the rule-record backend interface.
type Storage interface {
	// ListRuleRecords returns all records for a scope in insertion order.
	// Rule-declaration order matters: the evaluator emits candidates in it.
	ListRuleRecords(ctx context.Context, scope string) ([]types.RuleRecord, error)

	// SaveRuleRecord inserts a record and fills in its assigned ID.
	SaveRuleRecord(ctx context.Context, rec *types.RuleRecord) error

	// DeleteRuleRecord removes a record by ID.
	DeleteRuleRecord(ctx context.Context, id int64) error

	// Close releases the backend.
	Close() error
}

// LoadRuleSet fetches a scope's records and parses them through the typed
// boundary. Records that fail to parse or validate are skipped and reported
// in the second return value; a bad record never aborts the load
// (isolate-and-continue). The returned RuleSet is a fresh snapshot — callers
// reload per audit run so rule edits take effect without restart.
func LoadRuleSet(ctx context.Context, store Storage, scope string) (types.RuleSet, []error, error) {
	records, err := store.ListRuleRecords(ctx, scope)
	if err != nil {
		return types.RuleSet{}, nil, fmt.Errorf("failed to list rule records for scope %q: %w", scope, err)
	}

	var set types.RuleSet
	var skipped []error
	for _, rec := range records {
		if err := set.AddRecord(rec); err != nil {
			skipped = append(skipped, err)
		}
	}
	return set, skipped, nil
}
