package coverletter

import (
	"encoding/json"
	"strings"
)

// ExtractionError indicates that a generation call produced text from which
// no valid three-section record could be recovered.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "extract cover letter: " + e.Reason
}

// Extract locates the structured record embedded in raw model output and
// decodes it into a Result. Models wrap the payload in markdown fences or
// conversational commentary, so the scanner walks every opening brace and
// takes the first balanced object that decodes cleanly. Brace characters
// inside JSON string literals are skipped via a depth counter that is aware
// of quoting and escapes, so stray braces in the surrounding commentary do
// not poison the span.
//
// There is no retry and no partial recovery: any failure is reported as an
// ExtractionError for the caller to surface.
func Extract(raw string) (*Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &ExtractionError{Reason: "empty response"}
	}

	sawBrace := false
	var firstInvalid error

	for start := 0; start < len(raw); start++ {
		if raw[start] != '{' {
			continue
		}
		sawBrace = true

		end, ok := balancedSpan(raw, start)
		if !ok {
			continue
		}

		var result Result
		if err := json.Unmarshal([]byte(raw[start:end]), &result); err != nil {
			continue
		}

		if err := result.Validate(); err != nil {
			// remember the first decodable block; a later candidate may
			// still carry all three sections
			if firstInvalid == nil {
				firstInvalid = err
			}
			continue
		}

		result.Motivation = strings.TrimSpace(result.Motivation)
		result.Growth = strings.TrimSpace(result.Growth)
		result.Vision = strings.TrimSpace(result.Vision)

		return &result, nil
	}

	if firstInvalid != nil {
		return nil, firstInvalid
	}
	if !sawBrace {
		return nil, &ExtractionError{Reason: "no structured block found"}
	}
	return nil, &ExtractionError{Reason: "no balanced structured block found"}
}

// balancedSpan returns the index just past the object opened at start, or
// false when the object never closes.
func balancedSpan(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}
