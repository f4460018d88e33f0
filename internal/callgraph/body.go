package callgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBodyUnavailable marks a function whose body could not be recovered: the
// definition range points past EOF or no matching closing brace exists.
var ErrBodyUnavailable = errors.New("body unavailable")

// ExtractBody returns the full function body from source text: the definition
// line through the line holding the closing brace that matches the first '{'
// at or after startLine. The scan is a plain brace counter with no lexing;
// braces inside strings or comments are counted too. The inputs are expected
// to be well-formed code and callers tolerate an occasional over-capture.
func ExtractBody(source string, startLine int) (string, error) {
	lines := strings.Split(source, "\n")
	if startLine < 0 || startLine >= len(lines) {
		return "", fmt.Errorf("%w: start line %d past end of file (%d lines)", ErrBodyUnavailable, startLine, len(lines))
	}

	var bodyLines []string
	openBraces := 0
	foundFirstBrace := false

	for i := startLine; i < len(lines); i++ {
		line := lines[i]
		bodyLines = append(bodyLines, line)

		if !foundFirstBrace {
			if strings.Contains(line, "{") {
				foundFirstBrace = true
				openBraces = strings.Count(line, "{") - strings.Count(line, "}")
				if openBraces < 0 {
					openBraces = 0
				}
				if openBraces == 0 {
					return strings.Join(bodyLines, "\n"), nil
				}
			}
			continue
		}

		openBraces += strings.Count(line, "{") - strings.Count(line, "}")
		if openBraces <= 0 {
			return strings.Join(bodyLines, "\n"), nil
		}
	}

	if !foundFirstBrace {
		return "", fmt.Errorf("%w: no opening brace at or after line %d", ErrBodyUnavailable, startLine)
	}
	return "", fmt.Errorf("%w: unbalanced braces from line %d", ErrBodyUnavailable, startLine)
}
