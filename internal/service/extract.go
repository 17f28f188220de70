package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ayumi/capgen/internal/domain"
)

// ExtractResponseRecord isolates and decodes the caption payload from raw
// model output. Models wrap JSON in prose or markdown fences no matter how
// firmly the prompt forbids it, so the payload is cut out by position: the
// fragment starts at the first "{" and ends at the first "}" after it.
//
// The match is non-greedy on purpose. A "}" inside a caption value ends the
// fragment early and the decode fails; widening the match would instead risk
// swallowing trailing prose braces. Missing keys are not an error. Absent
// variants decode to empty strings and render as blank captions.
//
// The function is pure: same input, same result, no retries.
func ExtractResponseRecord(raw string) (*domain.ResponseRecord, error) {
	start := strings.Index(raw, "{")
	if start == -1 {
		return nil, fmt.Errorf("%w: no opening brace", ErrNoJSONFound)
	}

	offset := strings.Index(raw[start:], "}")
	if offset == -1 {
		return nil, fmt.Errorf("%w: no closing brace after position %d", ErrMalformedJSON, start)
	}
	fragment := raw[start : start+offset+1]

	var rec domain.ResponseRecord
	if err := json.Unmarshal([]byte(fragment), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	return &rec, nil
}
