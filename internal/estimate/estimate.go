// Package estimate loads estimates from the YAML interchange files the CLI
// consumes. An estimate is just an ordered list of line items; order is
// preserved because the matcher and evaluator are order-sensitive.
package estimate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/estaudit/estaudit/internal/types"
)

// File is the on-disk estimate shape.
type File struct {
	Name  string           `yaml:"name,omitempty"`
	Items []types.LineItem `yaml:"items"`
}

// Load reads an estimate file. Items with an empty description are kept in
// place — the engine skips them during comparison but they stay part of the
// estimate sequence.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read estimate: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse estimate %s: %w", path, err)
	}
	if len(f.Items) == 0 {
		return File{}, fmt.Errorf("estimate %s contains no line items", path)
	}
	return f, nil
}

// LoadRuleSeed reads a YAML seed file of rules and synonyms, used by the
// CLI to populate a local rule store.
type RuleSeed struct {
	Rules    []types.DependencyRule `yaml:"rules"`
	Synonyms []types.SynonymPair    `yaml:"synonyms"`
	Hints    []types.PromptHint     `yaml:"hints"`
}

// LoadSeed parses a rule seed file.
func LoadSeed(path string) (RuleSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSeed{}, fmt.Errorf("failed to read rule seed: %w", err)
	}
	var seed RuleSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return RuleSeed{}, fmt.Errorf("failed to parse rule seed %s: %w", path, err)
	}
	return seed, nil
}
