package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specgraph-dev/specgraph/internal/halstead"
)

func TestDefaultTablesPopulated(t *testing.T) {
	cfg := Default()
	require.NotEmpty(t, cfg.ProseIndicators)
	require.NotEmpty(t, cfg.ProseStarters)
	require.Equal(t, []int{6, 12, 17, 80}, cfg.FunctionKinds)
	require.Equal(t, 10, cfg.MaxProofDepth)
	require.NotEmpty(t, cfg.Replacements)
}

func TestLoadOverlaysOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	body := `
max_proof_depth = 4
prose_starters = ["Note "]

[[replacements]]
from = "==>"
to = "||"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.MaxProofDepth)
	require.Equal(t, []string{"Note "}, cfg.ProseStarters)
	require.Equal(t, []halstead.Replacement{{From: "==>", To: "||"}}, cfg.Replacements)
	// Untouched tables keep their defaults.
	require.Equal(t, Default().ProseIndicators, cfg.ProseIndicators)
	require.Equal(t, Default().FunctionKinds, cfg.FunctionKinds)
}

func TestLoadProjectMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadProject(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadProjectMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("max_proof_depth = ["), 0o644))
	_, err := LoadProject(dir)
	require.Error(t, err)
}
