package callgraph

import "strings"

// specMarkers and proofMarker are matched case-insensitively against the
// first five lines of a body. Spec wins over proof when both appear.
var specMarkers = []string{"spec fn", "spec(checked) fn", "open spec fn", "closed spec fn"}

const proofMarker = "proof fn"

// DetectMode tags a function as exec, proof or spec from its signature. Only
// the first five lines are examined: Verus mode keywords always precede the
// parameter list, and bodies can be arbitrarily long.
func DetectMode(body string) FunctionMode {
	lines := strings.Split(body, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	signature := strings.ToLower(strings.Join(lines, " "))

	for _, marker := range specMarkers {
		if strings.Contains(signature, marker) {
			return ModeSpec
		}
	}
	if strings.Contains(signature, proofMarker) {
		return ModeProof
	}
	return ModeExec
}
