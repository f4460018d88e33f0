package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteIfChangedTracked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	wrote, err := WriteIfChangedTracked(path, []byte("a"))
	require.NoError(t, err)
	require.True(t, wrote)

	wrote, err = WriteIfChangedTracked(path, []byte("a"))
	require.NoError(t, err)
	require.False(t, wrote)

	wrote, err = WriteIfChangedTracked(path, []byte("b"))
	require.NoError(t, err)
	require.True(t, wrote)
}

func TestWriteJSONIndentsAndTerminates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, map[string]int{"n": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"n\": 1\n}\n", string(data))
}

func TestProjectTagStable(t *testing.T) {
	tag := ProjectTag("/home/dev/proj")
	require.Len(t, tag, 8)
	require.Equal(t, tag, ProjectTag("/home/dev/proj"))
	require.NotEqual(t, tag, ProjectTag("/home/dev/other"))
}

func TestArtifactPathShape(t *testing.T) {
	path := ArtifactPath("/tmp/work", "/home/dev/proj", "graph")
	base := filepath.Base(path)
	require.True(t, strings.HasPrefix(base, "proj-"), base)
	require.True(t, strings.HasSuffix(base, ".graph.json"), base)
	require.Equal(t, "/tmp/work", filepath.Dir(path))
}
