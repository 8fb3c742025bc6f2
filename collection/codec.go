package collection

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decode parses a stored payload into records. An absent or blank payload
// is an empty collection; anything unparsable is ErrCorrupt.
func Decode[T any](raw string, present bool) ([]T, error) {
	if !present || strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Encode serializes the full sequence of records as a JSON array.
func Encode[T any](records []T) (string, error) {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode collection: %w", err)
	}
	return string(b), nil
}
