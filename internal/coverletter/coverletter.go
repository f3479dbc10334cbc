package coverletter

import (
	"errors"
	"strings"
)

// ErrMissingInput indicates that a request lacks the required company or
// position fields. Requests failing this check must never reach the
// generation backend.
var ErrMissingInput = errors.New("company and position are required")

// Request carries the user input for a single cover letter generation.
// Keywords are optional hints and may be empty.
type Request struct {
	Company  string `json:"company" mapstructure:"company"`
	Position string `json:"position" mapstructure:"position"`
	Keywords string `json:"keywords,omitempty" mapstructure:"keywords"`
}

// Normalize trims surrounding whitespace from all fields.
func (r *Request) Normalize() {
	r.Company = strings.TrimSpace(r.Company)
	r.Position = strings.TrimSpace(r.Position)
	r.Keywords = strings.TrimSpace(r.Keywords)
}

// Validate reports ErrMissingInput when company or position is empty after
// normalization.
func (r *Request) Validate() error {
	r.Normalize()
	if r.Company == "" || r.Position == "" {
		return ErrMissingInput
	}
	return nil
}

// Result is a generated cover letter: three sections, all required.
type Result struct {
	Motivation string `json:"motivation"`
	Growth     string `json:"growth"`
	Vision     string `json:"vision"`
}

// Validate reports an error when any section is missing or blank. A result
// with a blank section is never handed to the caller.
func (r *Result) Validate() error {
	for _, section := range []struct {
		name string
		text string
	}{
		{"motivation", r.Motivation},
		{"growth", r.Growth},
		{"vision", r.Vision},
	} {
		if strings.TrimSpace(section.text) == "" {
			return &ExtractionError{Reason: "missing section " + section.name}
		}
	}
	return nil
}
