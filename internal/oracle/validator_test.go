package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidateResumeVerdicts(t *testing.T) {
	testCases := []struct {
		name        string
		reply       string
		wantResume  bool
		wantMessage string
	}{
		{
			"positive verdict",
			`{"isResume": true}`,
			true,
			"",
		},
		{
			"negative verdict with message",
			`{"isResume": false, "message": "This doesn't appear to be a resume"}`,
			false,
			"This doesn't appear to be a resume",
		},
		{
			"fenced positive verdict",
			"```json\n{\"isResume\": true}\n```",
			true,
			"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeOracle{reply: tc.reply}
			v := NewResumeValidator(fake)

			result, err := v.Validate(context.Background(), "some resume text")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsResume != tc.wantResume {
				t.Errorf("IsResume = %v, want %v", result.IsResume, tc.wantResume)
			}
			if result.Message != tc.wantMessage {
				t.Errorf("Message = %q, want %q", result.Message, tc.wantMessage)
			}
		})
	}
}

// An unusable oracle reply must be an error, never a default "is a
// resume" verdict.
func TestValidateResumeUnparseableOutput(t *testing.T) {
	fake := &fakeOracle{reply: "sure, looks like a resume to me!"}
	v := NewResumeValidator(fake)

	result, err := v.Validate(context.Background(), "some resume text")
	if err == nil {
		t.Fatalf("expected an error, got verdict %+v", result)
	}
	if !errors.Is(err, ErrBadOutput) {
		t.Errorf("expected ErrBadOutput, got %v", err)
	}
}

func TestValidateResumeOracleFailure(t *testing.T) {
	fake := &fakeOracle{err: fmt.Errorf("%w: timeout", ErrUnavailable)}
	v := NewResumeValidator(fake)

	_, err := v.Validate(context.Background(), "some resume text")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestValidateResumeTruncatesExcerpt(t *testing.T) {
	fake := &fakeOracle{reply: `{"isResume": true}`}
	v := NewResumeValidator(fake)

	long := strings.Repeat("a", 3000) + "MARKER"
	if _, err := v.Validate(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.prompts) != 1 {
		t.Fatalf("expected one oracle call, got %d", len(fake.prompts))
	}
	if strings.Contains(fake.prompts[0], "MARKER") {
		t.Error("prompt should only carry the first 2000 characters of the text")
	}
}
