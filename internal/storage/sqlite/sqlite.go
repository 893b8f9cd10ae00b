// Package sqlite implements the rule-record store on SQLite. The database is
// a single-file local store: good enough for the CLI and for tests, and the
// same schema the hosted CRUD surface writes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/estaudit/estaudit/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS rule_records (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	rule_type  TEXT NOT NULL,
	scope      TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_rule_records_scope ON rule_records(scope);
`

// Store implements storage.Storage using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) the rule database at path and
// initializes the schema. WAL mode keeps concurrent CLI invocations from
// tripping over each other.
func New(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListRuleRecords returns all records for a scope ordered by ID, which is
// insertion order — the evaluator depends on rule-declaration order.
func (s *Store) ListRuleRecords(ctx context.Context, scope string) ([]types.RuleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, rule_type, scope, payload FROM rule_records WHERE scope = ? ORDER BY id`, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to query rule records: %w", err)
	}
	defer rows.Close()

	var records []types.RuleRecord
	for rows.Next() {
		var rec types.RuleRecord
		var ruleType, payload string
		if err := rows.Scan(&rec.ID, &ruleType, &rec.Scope, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan rule record: %w", err)
		}
		rec.RuleType = types.RuleType(ruleType)
		rec.Payload = []byte(payload)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rule records: %w", err)
	}
	return records, nil
}

// SaveRuleRecord inserts a record and sets its assigned ID. The payload is
// stored opaquely; parsing happens at the typed boundary, not here.
func (s *Store) SaveRuleRecord(ctx context.Context, rec *types.RuleRecord) error {
	if !rec.RuleType.IsValid() {
		return fmt.Errorf("unknown rule type %q", rec.RuleType)
	}
	if rec.Scope == "" {
		return fmt.Errorf("scope is required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rule_records (rule_type, scope, payload) VALUES (?, ?, ?)`,
		string(rec.RuleType), rec.Scope, string(rec.Payload))
	if err != nil {
		return fmt.Errorf("failed to insert rule record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted rule record id: %w", err)
	}
	rec.ID = id
	return nil
}

// DeleteRuleRecord removes a record by ID. Deleting an unknown ID is an
// error so CLI typos surface instead of silently succeeding.
func (s *Store) DeleteRuleRecord(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rule_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("rule record %d not found", id)
	}
	return nil
}
