// Package specs extracts requires/ensures/decreases clause text from Verus
// function bodies and scores each clause.
package specs

import "strings"

// signaturePrefixes identify text that begins with a function signature.
// Bodies that start mid-function carry no extractable clauses.
var signaturePrefixes = []string{
	"fn ",
	"pub fn ",
	"pub(crate) fn ",
	"pub(super) fn ",
	"proof fn ",
	"exec fn ",
	"spec fn ",
	"tracked fn ",
	"pub proof fn ",
	"pub exec fn ",
	"pub spec fn ",
	"pub tracked fn ",
	"pub(crate) proof fn ",
	"pub(crate) exec fn ",
	"pub(crate) spec fn ",
	"pub(crate) tracked fn ",
}

// HasSignature reports whether body begins with a recognised fn signature.
func HasSignature(body string) bool {
	trimmed := strings.TrimLeft(body, " \t\n\r")
	for _, prefix := range signaturePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// FindBodyStart returns the byte offset of the '{' opening the executable
// body: the first depth-0 brace that is not a spec block. Spec blocks are
// recognised by a ',' following their matching '}' (as in `==> { ... },`
// inside an ensures list). Returns len(body) when no body brace exists.
func FindBodyStart(body string) int {
	depth := 0
	i := 0
	for i < len(body) {
		switch body[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '{':
			if depth == 0 {
				j := matchingBrace(body, i)
				k := j
				for k < len(body) && isSpace(body[k]) {
					k++
				}
				if k < len(body) && body[k] == ',' {
					i = k + 1
					continue
				}
				return i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		i++
	}
	return len(body)
}

// matchingBrace returns the offset just past the '}' matching the '{' at open.
func matchingBrace(body string, open int) int {
	depth := 1
	j := open + 1
	for j < len(body) && depth > 0 {
		switch body[j] {
		case '{':
			depth++
		case '}':
			depth--
		}
		j++
	}
	return j
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// CleanSignature strips comments and trigger annotations from signature text
// and flattens it to one line with the ghost view operator removed.
func CleanSignature(text string) string {
	cleaned := removeTriggers(RemoveComments(text))
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	return strings.ReplaceAll(cleaned, "@", "")
}

// RemoveComments drops line and block comments. String literals pass through
// untouched, including escaped quotes.
func RemoveComments(text string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '"':
			b.WriteByte(c)
			i++
			for i < len(text) {
				b.WriteByte(text[i])
				if text[i] == '\\' && i+1 < len(text) {
					i++
					b.WriteByte(text[i])
				} else if text[i] == '"' {
					i++
					break
				}
				i++
			}
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			i += 2
			for i+1 < len(text) && !(text[i] == '*' && text[i+1] == '/') {
				i++
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// removeTriggers drops `#![trigger ...]` annotations, tracking nested
// brackets so `#![trigger old(inputs)[i]]` is removed whole.
func removeTriggers(text string) string {
	const marker = "#![trigger"
	var b strings.Builder
	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], marker) {
			i += len(marker)
			depth := 1
			for i < len(text) && depth > 0 {
				switch text[i] {
				case '[':
					depth++
				case ']':
					depth--
				}
				i++
			}
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

// SplitConditions breaks a clause block into individual conditions at depth-0
// commas. Comments and triggers are removed first and the block is flattened
// to one line; commas inside strings or any bracket pair do not split.
func SplitConditions(block string) []string {
	singleLine := strings.ReplaceAll(removeTriggers(RemoveComments(block)), "\n", " ")

	var conditions []string
	var current strings.Builder
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(singleLine); i++ {
		c := singleLine[i]
		if escaped {
			current.WriteByte(c)
			escaped = false
			continue
		}
		if inString && c == '\\' {
			current.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			current.WriteByte(c)
			continue
		}
		if inString {
			current.WriteByte(c)
			continue
		}
		switch c {
		case '(', '[', '{':
			depth++
			current.WriteByte(c)
		case ')', ']', '}':
			depth--
			current.WriteByte(c)
		case ',':
			if depth == 0 {
				if cond := strings.TrimSpace(current.String()); cond != "" {
					conditions = append(conditions, cond)
				}
				current.Reset()
			} else {
				current.WriteByte(c)
			}
		default:
			current.WriteByte(c)
		}
	}
	if cond := strings.TrimSpace(current.String()); cond != "" {
		conditions = append(conditions, cond)
	}
	return conditions
}

// clauseKeywords order matters only for terminator lookup, not extraction.
var clauseTerminators = map[string][]string{
	"requires":  {"ensures", "decreases", "returns"},
	"ensures":   {"decreases", "returns"},
	"decreases": {"requires", "ensures", "returns"},
}

// ExtractClause returns the raw text of one clause block (requires, ensures
// or decreases) from the signature region of body, or "" when absent. The
// returned text is already cleaned.
func ExtractClause(body, keyword string) string {
	if !HasSignature(body) {
		return ""
	}
	signature := body[:FindBodyStart(body)]
	cleaned := CleanSignature(signature)

	start := strings.Index(cleaned, keyword)
	if start == -1 {
		return ""
	}
	start += len(keyword)

	rest := cleaned[start:]
	end := len(rest)
	for _, terminator := range clauseTerminators[keyword] {
		if pos := strings.Index(rest, terminator); pos != -1 && pos < end {
			end = pos
		}
	}
	block := rest[:end]
	if strings.TrimSpace(block) == "" {
		return ""
	}
	return block
}
