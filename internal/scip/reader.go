package scip

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInputMalformed marks an index file whose JSON shape is wrong. It is the
// only fatal input error in the pipeline.
var ErrInputMalformed = errors.New("index input malformed")

// ErrIO marks a file that could not be read.
var ErrIO = errors.New("io error")

// ReadIndex parses a SCIP JSON index file. Occurrence order within each
// document is preserved exactly as stored; the reader never reorders or
// deduplicates.
func ReadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading index %s: %v", ErrIO, path, err)
	}
	return ParseIndex(data)
}

// ParseIndex decodes index JSON from memory.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}
	return &idx, nil
}
