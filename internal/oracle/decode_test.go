package oracle

import (
	"errors"
	"testing"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			"strips json code fence",
			"```json\n[{\"a\": 1}]\n```",
			`[{"a": 1}]`,
		},
		{
			"strips bare code fence",
			"```\n[1, 2]\n```",
			"[1, 2]",
		},
		{
			"flattens literal newlines",
			"{\"question\": \"What\ndoes\nthis do?\"}",
			`{"question": "What does this do?"}`,
		},
		{
			"flattens escaped newlines",
			`{"question": "line one\nline two"}`,
			`{"question": "line one line two"}`,
		},
		{
			"escapes tag-like substrings",
			`{"question": "What does <App /> render?"}`,
			`{"question": "What does &lt;App /&gt; render?"}`,
		},
		{
			"trims surrounding whitespace",
			"  [1]  ",
			"[1]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitize(tc.raw)
			if got != tc.expected {
				t.Errorf("sanitize(%q) = %q, want %q", tc.raw, got, tc.expected)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	got := stripFences("```json\n{\"isResume\": true}\n```")
	if got != `{"isResume": true}` {
		t.Errorf("stripFences returned %q", got)
	}
}

func TestDecodeLenientTrailingComma(t *testing.T) {
	var out []int
	if err := decodeLenient("[1, 2, 3,]", &out); err != nil {
		t.Fatalf("expected trailing comma to be tolerated, got %v", err)
	}
	if len(out) != 3 {
		t.Errorf("expected 3 elements, got %d", len(out))
	}
}

func TestDecodeLenientGarbage(t *testing.T) {
	var out []int
	err := decodeLenient("definitely not json", &out)
	if err == nil {
		t.Fatal("expected an error for non-JSON input")
	}
	if !errors.Is(err, ErrBadOutput) {
		t.Errorf("expected ErrBadOutput, got %v", err)
	}
}
