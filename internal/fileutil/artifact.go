package fileutil

import (
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// ProjectTag derives a short stable tag from the absolute project path, so
// artifacts for different checkouts of the same project never collide.
func ProjectTag(projectPath string) string {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		abs = projectPath
	}
	sum := xxhash.Sum64String(abs)
	return fmt.Sprintf("%016x", sum)[:8]
}

// ArtifactPath names one intermediate artifact inside dir:
// <basename>-<tag>.<kind>.json.
func ArtifactPath(dir, projectPath, kind string) string {
	base := filepath.Base(projectPath)
	name := fmt.Sprintf("%s-%s.%s.json", base, ProjectTag(projectPath), kind)
	return filepath.Join(dir, name)
}
