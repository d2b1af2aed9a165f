package oracle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"resumentor/internal/models"
)

// GenerateTimeout bounds the question-generation oracle call, which is
// the slowest request the service makes.
const GenerateTimeout = 60 * time.Second

// ErrInvalidDifficulty is returned before any oracle call when the
// requested difficulty is not easy, medium or hard.
var ErrInvalidDifficulty = errors.New("difficulty must be one of: easy, medium, hard")

// SchemaError means the oracle's output parsed as JSON but the content
// violates the fixed quiz schema. Index is the offending question, or -1
// when the array shape itself is wrong.
type SchemaError struct {
	Index  int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid question set: %s", e.Reason)
	}
	return fmt.Sprintf("invalid question at index %d: %s", e.Index, e.Reason)
}

// QuestionGenerator produces a validated 5-question quiz from resume text.
type QuestionGenerator struct {
	Oracle TextOracle
}

func NewQuestionGenerator(oracle TextOracle) *QuestionGenerator {
	return &QuestionGenerator{Oracle: oracle}
}

const generatePromptFmt = `
You are a technical interviewer conducting a live interview session. Based on the candidate's resume below, generate exactly 5 multiple-choice questions at the specified difficulty level that simulate a real, interactive interview experience. Questions must be phrased naturally and conversationally, reflecting the tone and style of speaking to a candidate in person. Use clear, concise English with realistic interview-style slang or phrasing appropriate to each difficulty level.

RESUME:
"""
%s
"""

DIFFICULTY: %s

Requirements:
- Focus strictly on the candidate's mentioned skills, technologies, projects, and experience.
- Each question must have 4 options (A-D).
- Questions should test practical understanding, debugging, best practices, or architectural thinking based on the difficulty:
  - easy: basics, definitions, syntax
  - medium: application, debugging, best practices
  - hard: architecture, optimization, edge cases
- Include questions involving candidate's projects if possible only 2.
- The questions should be challenging and thought-provoking enough to confirm deep comprehension, even at easy level.
- Specify the correct answer as an index (0-3).
- Provide a clear, educational explanation for the correct answer.
- Indicate the specific skill being tested (e.g., React, MongoDB).

Output instructions:
- Return only a valid JSON array matching the following format, without any additional text or comments.
- Do not include markdown formatting, extraneous punctuation, or trailing commas.
- Embed any code snippets as plain strings inside option values or explanations.

Format example:
[
  {
    "question": "...",
    "options": ["...", "...", "...", "..."],
    "correctAnswer": 0,
    "explanation": "...",
    "skill": "..."
  }
]

Generate exactly 5 questions following these guidelines.
`

// Generate asks the oracle for a quiz and strictly validates the reply.
// It never retries; a SchemaError or ErrBadOutput means the caller may
// issue a fresh generation call if it wants another attempt.
func (g *QuestionGenerator) Generate(ctx context.Context, resumeText, difficulty string) ([]models.QuizQuestion, error) {
	if !models.ValidDifficulty(difficulty) {
		return nil, ErrInvalidDifficulty
	}

	ctx, cancel := context.WithTimeout(ctx, GenerateTimeout)
	defer cancel()

	raw, err := g.Oracle.Complete(ctx, fmt.Sprintf(generatePromptFmt, resumeText, difficulty))
	if err != nil {
		return nil, fmt.Errorf("generating questions: %w", err)
	}

	questions, err := DecodeQuestions(raw)
	if err != nil {
		return nil, fmt.Errorf("generating questions: %w", err)
	}
	return questions, nil
}

// DecodeQuestions turns raw oracle output into a validated question set.
// This is the single cleanup/parse/validate boundary for quiz payloads.
func DecodeQuestions(raw string) ([]models.QuizQuestion, error) {
	cleaned := sanitize(raw)

	var questions []models.QuizQuestion
	if err := decodeLenient(cleaned, &questions); err != nil {
		// Raw output is diagnostic-only, never surfaced to clients.
		log.Printf("failed to parse oracle quiz output: %v; cleaned output: %s", err, cleaned)
		return nil, err
	}

	if len(questions) != models.QuestionsPerQuiz {
		return nil, &SchemaError{
			Index:  -1,
			Reason: fmt.Sprintf("expected %d questions, got %d", models.QuestionsPerQuiz, len(questions)),
		}
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return nil, &SchemaError{Index: i, Reason: err.Error()}
		}
	}
	return questions, nil
}
