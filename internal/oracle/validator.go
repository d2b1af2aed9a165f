package oracle

import (
	"context"
	"fmt"
	"log"
	"time"
)

// validationExcerptLen bounds how much resume text is sent to the oracle
// for the cheap is-this-a-resume gate. The full text is still used for
// question generation.
const validationExcerptLen = 2000

// ValidateTimeout bounds the resume-validation oracle call.
const ValidateTimeout = 30 * time.Second

// Validation is the oracle's verdict on whether a text is a resume.
type Validation struct {
	IsResume bool   `json:"isResume"`
	Message  string `json:"message,omitempty"`
}

// ResumeValidator gates quiz generation on the input actually being a
// resume.
type ResumeValidator struct {
	Oracle TextOracle
}

func NewResumeValidator(oracle TextOracle) *ResumeValidator {
	return &ResumeValidator{Oracle: oracle}
}

const validatePromptFmt = `
You are a resume validator. Analyze if the following text is actually a resume.

A valid resume typically contains sections like:
- Skills / Technical Skills
- Experience / Work Experience
- Projects
- Education
- Contact Information

If the text is clearly NOT a resume (random text, articles, books, etc.), return:
{"isResume": false, "message": "This doesn't appear to be a resume"}

If it IS a resume, return:
{"isResume": true}

Return ONLY valid JSON, nothing else.

Text to analyze:
"""
%s
"""
`

// Validate asks the oracle whether text is plausibly a resume. A failed
// oracle call or unparseable reply is an error, never a default verdict:
// callers must not proceed to generation on failure.
func (v *ResumeValidator) Validate(ctx context.Context, text string) (*Validation, error) {
	excerpt := text
	if len(excerpt) > validationExcerptLen {
		excerpt = excerpt[:validationExcerptLen]
	}

	ctx, cancel := context.WithTimeout(ctx, ValidateTimeout)
	defer cancel()

	raw, err := v.Oracle.Complete(ctx, fmt.Sprintf(validatePromptFmt, excerpt))
	if err != nil {
		return nil, fmt.Errorf("validating resume: %w", err)
	}

	var result Validation
	if err := decodeLenient(stripFences(raw), &result); err != nil {
		log.Printf("resume validation returned non-JSON output: %v", err)
		return nil, fmt.Errorf("validating resume: %w", err)
	}
	return &result, nil
}
