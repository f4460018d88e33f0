package callgraph

import "strings"

// ParseSections walks a function body line by line and records where the
// requires, ensures/decreases and executable regions sit. Lines are numbered
// from startLine, the 0-based line the definition begins on.
//
// Section keywords are only recognised before the first opening brace at
// depth 0; once the body starts nothing inside it is examined. A decreases
// clause folds into the ensures range for segmentation purposes: both sit
// between the preconditions and the body and call sites inside them classify
// the same way.
func ParseSections(body string, startLine int) FunctionSections {
	sections := FunctionSections{StartLine: startLine}

	inRequires := false
	inEnsures := false
	requiresStart := 0
	ensuresStart := 0
	braceDepth := 0
	foundBodyStart := false

	// A clause never ends before the line it started on: when the body brace
	// shares the clause's line, the range is that single line.
	closeRequires := func(end int) {
		if inRequires {
			if end < requiresStart {
				end = requiresStart
			}
			sections.RequiresRange = &LineRange{Start: requiresStart, End: end}
			inRequires = false
		}
	}
	closeEnsures := func(end int) {
		if inEnsures {
			if end < ensuresStart {
				end = ensuresStart
			}
			sections.EnsuresRange = &LineRange{Start: ensuresStart, End: end}
			inEnsures = false
		}
	}

	for i, line := range strings.Split(body, "\n") {
		lineNum := startLine + i

		if !foundBodyStart {
			scanPart := line
			if brace := strings.IndexByte(line, '{'); brace != -1 {
				scanPart = line[:brace]
			}
			switch {
			case hasClauseKeyword(scanPart, "requires"):
				closeEnsures(lineNum - 1)
				inRequires = true
				requiresStart = lineNum
			case hasClauseKeyword(scanPart, "ensures") || hasClauseKeyword(scanPart, "decreases"):
				closeRequires(lineNum - 1)
				closeEnsures(lineNum - 1)
				inEnsures = true
				ensuresStart = lineNum
			}
		}

		for _, ch := range line {
			switch ch {
			case '{':
				if braceDepth == 0 && !foundBodyStart {
					foundBodyStart = true
					bodyStart := lineNum
					sections.BodyStartLine = &bodyStart
					closeRequires(lineNum - 1)
					closeEnsures(lineNum - 1)
				}
				braceDepth++
			case '}':
				if braceDepth > 0 {
					braceDepth--
				}
			}
		}
	}

	return sections
}

// hasClauseKeyword reports whether s contains keyword as a standalone word.
// Identifiers like ensures_helper must not count.
func hasClauseKeyword(s, keyword string) bool {
	for from := 0; ; {
		idx := strings.Index(s[from:], keyword)
		if idx == -1 {
			return false
		}
		idx += from
		before := idx == 0 || !isIdentChar(s[idx-1])
		afterIdx := idx + len(keyword)
		after := afterIdx >= len(s) || !isIdentChar(s[afterIdx])
		if before && after {
			return true
		}
		from = idx + len(keyword)
	}
}

func isIdentChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// ClassifyCallLocation places a call line within the caller's sections. The
// executable region wins when the body brace shares a line with a clause.
// Boundaries are inclusive; absent sections never match.
func ClassifyCallLocation(callLine int, sections FunctionSections) CallLocation {
	if sections.BodyStartLine != nil && callLine >= *sections.BodyStartLine {
		return LocationInner
	}
	if sections.RequiresRange.Contains(callLine) {
		return LocationPrecondition
	}
	if sections.EnsuresRange.Contains(callLine) {
		return LocationPostcondition
	}
	return LocationInner
}
