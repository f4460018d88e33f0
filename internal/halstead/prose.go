package halstead

import "strings"

// DefaultProseIndicators are substrings that mark a clause as English text.
// Overridable through configuration; the defaults come from surveying real
// verification comments that leaked into extracted clauses.
var DefaultProseIndicators = []string{
	"However,",
	"Thus,",
	"Therefore,",
	"i.e.",
	"e.g.",
	"must be clear",
	"should be",
	"cannot add",
	"are swapped",
	"remain unchanged",
	"is equivalent to",
	"We have that",
	"only changing",
	"in either case",
	"returns if",
	"given input",
	"an inverse",
	"each coset",
	"is the multiplicative inverse",
	"is zero",
	"similarly for the",
}

// DefaultProseStarters are leading words that suggest an English sentence.
// A starter only fires when the clause carries no comparison operator.
var DefaultProseStarters = []string{
	"However",
	"Thus",
	"Therefore",
	"Given",
	"When",
	"If",
	"The ",
	"A ",
	"An ",
	"This ",
	"That ",
	"These ",
	"Those ",
	"We ",
	"It ",
	"As ",
	"For ",
	"In ",
	"On ",
	"At ",
}

// ProseFilter decides whether a clause is natural language rather than code.
// The zero value uses the default tables.
type ProseFilter struct {
	Indicators []string
	Starters   []string
}

func (f ProseFilter) indicators() []string {
	if f.Indicators != nil {
		return f.Indicators
	}
	return DefaultProseIndicators
}

func (f ProseFilter) starters() []string {
	if f.Starters != nil {
		return f.Starters
	}
	return DefaultProseStarters
}

var comparisonMarkers = []string{"==", "!=", "<=", ">="}

var operatorChars = "=<>!&|+-*/%"

// IsProse reports whether the text reads as documentation instead of a
// parseable expression. Short strings are never prose; doc-comment markers
// and the indicator substrings always are; a prose starter counts only when
// no comparison operator balances it; finally a letters-to-operators ratio
// catches long undecorated sentences.
func (f ProseFilter) IsProse(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 10 {
		return false
	}

	if strings.HasPrefix(trimmed, "///") || strings.HasPrefix(trimmed, "//!") {
		return true
	}

	for _, indicator := range f.indicators() {
		if strings.Contains(trimmed, indicator) {
			return true
		}
	}

	hasComparison := false
	for _, marker := range comparisonMarkers {
		if strings.Contains(trimmed, marker) {
			hasComparison = true
			break
		}
	}
	if !hasComparison {
		for _, starter := range f.starters() {
			if strings.HasPrefix(trimmed, starter) {
				return true
			}
		}
	}

	// Tail of a block comment whose opening was cut off upstream.
	if strings.HasSuffix(trimmed, "*/") && !strings.HasPrefix(trimmed, "/*") {
		return true
	}

	letters := 0
	operators := 0
	for _, ch := range trimmed {
		switch {
		case isLetter(ch):
			letters++
		case strings.ContainsRune(operatorChars, ch):
			operators++
		}
	}
	return letters > 50 && operators < 3
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
