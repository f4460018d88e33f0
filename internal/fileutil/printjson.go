// Package fileutil holds the artifact IO helpers shared by the CLI commands:
// change-aware writes, JSON output and deterministic artifact naming.
package fileutil

import (
	"encoding/json"
	"os"
)

// PrintJSON writes value to stdout as indented JSON, for --json command
// output.
func PrintJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
