package halstead

import (
	"math"
	"sort"
)

// Counts accumulates operator and operand occurrences. Uniqueness is by
// textual equality, so "call" as an operator is one vocabulary entry no
// matter how many call sites contribute it.
type Counts struct {
	operators map[string]int
	operands  map[string]int
}

// NewCounts returns an empty accumulator.
func NewCounts() *Counts {
	return &Counts{
		operators: make(map[string]int),
		operands:  make(map[string]int),
	}
}

// AddOperator records one occurrence of an operator token.
func (c *Counts) AddOperator(op string) {
	c.operators[op]++
}

// AddOperand records one occurrence of an operand token.
func (c *Counts) AddOperand(op string) {
	c.operands[op]++
}

// Merge folds other into c: vocabularies union, totals sum. Derived
// quantities are recomputed from the merged counts, never added.
func (c *Counts) Merge(other *Counts) {
	if other == nil {
		return
	}
	for op, n := range other.operators {
		c.operators[op] += n
	}
	for op, n := range other.operands {
		c.operands[op] += n
	}
}

// Empty reports whether nothing has been counted.
func (c *Counts) Empty() bool {
	return len(c.operators) == 0 && len(c.operands) == 0
}

// Frequency is one vocabulary entry with its occurrence count.
type Frequency struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// OperatorFrequencies returns the operator vocabulary ordered by descending
// count, then ascending token.
func (c *Counts) OperatorFrequencies() []Frequency {
	out := make([]Frequency, 0, len(c.operators))
	for op, n := range c.operators {
		out = append(out, Frequency{Token: op, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// Metrics are the classic Halstead quantities derived from a Counts.
type Metrics struct {
	Length          int     `json:"halstead_length"`
	Vocabulary      int     `json:"vocabulary"`
	Difficulty      float64 `json:"difficulty"`
	Volume          float64 `json:"volume"`
	Effort          float64 `json:"effort"`
	UniqueOperators int     `json:"n1_unique_operators"`
	UniqueOperands  int     `json:"n2_unique_operands"`
	TotalOperators  int     `json:"n1_total_operators"`
	TotalOperands   int     `json:"n2_total_operands"`
}

// Metrics derives the Halstead quantities. Degenerate inputs are defined:
// difficulty is 0 when there are no distinct operands, volume is 0 when the
// vocabulary is empty.
func (c *Counts) Metrics() Metrics {
	n1 := len(c.operators)
	n2 := len(c.operands)
	totalOps := 0
	for _, n := range c.operators {
		totalOps += n
	}
	totalOperands := 0
	for _, n := range c.operands {
		totalOperands += n
	}

	length := totalOps + totalOperands
	vocabulary := n1 + n2

	difficulty := 0.0
	if n2 > 0 {
		difficulty = (float64(n1) / 2.0) * (float64(totalOperands) / float64(n2))
	}
	volume := 0.0
	if vocabulary > 0 {
		volume = float64(length) * math.Log2(float64(vocabulary))
	}

	return Metrics{
		Length:          length,
		Vocabulary:      vocabulary,
		Difficulty:      difficulty,
		Volume:          volume,
		Effort:          difficulty * volume,
		UniqueOperators: n1,
		UniqueOperands:  n2,
		TotalOperators:  totalOps,
		TotalOperands:   totalOperands,
	}
}
