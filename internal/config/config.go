// Package config holds the tunable heuristic tables of the pipeline: prose
// detection lists, the function-like SCIP kind set, the proof depth bound and
// the Verus-to-Rust rewrite rules. Defaults are baked in; a specgraph.toml in
// the project root overrides individual tables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/specgraph-dev/specgraph/internal/halstead"
	"github.com/specgraph-dev/specgraph/internal/proof"
)

// FileName is looked up in the project root by LoadProject.
const FileName = "specgraph.toml"

// defaultFunctionKinds are the SCIP symbol kinds treated as function-like:
// Function, Method, MacroFunction and StaticMethod.
var defaultFunctionKinds = []int{6, 12, 17, 80}

// Config is the full heuristic table set. Zero values mean "use the default";
// Load never leaves a field empty.
type Config struct {
	ProseIndicators []string               `toml:"prose_indicators"`
	ProseStarters   []string               `toml:"prose_starters"`
	FunctionKinds   []int                  `toml:"function_kinds"`
	MaxProofDepth   int                    `toml:"max_proof_depth"`
	Replacements    []halstead.Replacement `toml:"replacements"`
}

// Default returns the baked-in tables.
func Default() Config {
	return Config{
		ProseIndicators: halstead.DefaultProseIndicators,
		ProseStarters:   halstead.DefaultProseStarters,
		FunctionKinds:   defaultFunctionKinds,
		MaxProofDepth:   proof.DefaultMaxDepth,
		Replacements:    halstead.DefaultReplacements,
	}
}

// Load reads path and overlays it on the defaults. Tables absent from the
// file keep their default contents.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadProject looks for specgraph.toml under projectRoot. A missing file is
// not an error; any other failure is.
func LoadProject(projectRoot string) (Config, error) {
	path := filepath.Join(projectRoot, FileName)
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ProseFilter builds the clause prose filter from the configured lists.
func (c Config) ProseFilter() halstead.ProseFilter {
	return halstead.ProseFilter{
		Indicators: c.ProseIndicators,
		Starters:   c.ProseStarters,
	}
}

// Rewriter builds the preprocessing rewriter from the configured rules.
func (c Config) Rewriter() halstead.Rewriter {
	return halstead.Rewriter{Replacements: c.Replacements}
}
