package coverletter

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Result
	}{
		{
			name: "bare object",
			raw:  `{"motivation":"A","growth":"B","vision":"C"}`,
			want: Result{Motivation: "A", Growth: "B", Vision: "C"},
		},
		{
			name: "surrounding commentary",
			raw:  "Here you go:\n{\"motivation\":\"A\",\"growth\":\"B\",\"vision\":\"C\"}\nEnjoy!",
			want: Result{Motivation: "A", Growth: "B", Vision: "C"},
		},
		{
			name: "markdown fence",
			raw:  "```json\n{\"motivation\":\"A\",\"growth\":\"B\",\"vision\":\"C\"}\n```",
			want: Result{Motivation: "A", Growth: "B", Vision: "C"},
		},
		{
			name: "stray opening brace before payload",
			raw:  "note { unbalanced\n{\"motivation\":\"A\",\"growth\":\"B\",\"vision\":\"C\"}",
			want: Result{Motivation: "A", Growth: "B", Vision: "C"},
		},
		{
			name: "earlier balanced block without the sections",
			raw:  "{} here it is: {\"motivation\":\"A\",\"growth\":\"B\",\"vision\":\"C\"}",
			want: Result{Motivation: "A", Growth: "B", Vision: "C"},
		},
		{
			name: "braces inside string values",
			raw:  `{"motivation":"use {dedication}","growth":"B","vision":"C"} trailing }`,
			want: Result{Motivation: "use {dedication}", Growth: "B", Vision: "C"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Extract(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tc.want {
				t.Fatalf("unexpected result: %+v", got)
			}
		})
	}
}

func TestExtractEscapedQuotes(t *testing.T) {
	got, err := Extract(`{"motivation":"she said \"go\"","growth":"B","vision":"C"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Motivation != `she said "go"` {
		t.Fatalf("unexpected motivation: %q", got.Motivation)
	}
}

func TestExtractFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "no braces", raw: "I could not produce a cover letter."},
		{name: "unterminated object", raw: `{"motivation":"A","growth":"B"`},
		{name: "missing field", raw: `{"motivation":"A","growth":"B"}`},
		{name: "blank field", raw: `{"motivation":"A","growth":" ","vision":"C"}`},
		{name: "not an object", raw: "score: 10 } out of { 10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(tc.raw)
			if err == nil {
				t.Fatalf("expected extraction error")
			}

			var extractionErr *ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("expected *ExtractionError, got %T: %v", err, err)
			}
		})
	}
}
