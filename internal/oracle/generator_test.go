package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"resumentor/internal/models"
)

func marshalQuestions(qs []models.QuizQuestion) (string, error) {
	b, err := json.Marshal(qs)
	return string(b), err
}

type fakeOracle struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeOracle) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// validQuizJSON builds a well-formed 5-question payload.
func validQuizJSON() string {
	items := make([]string, 0, models.QuestionsPerQuiz)
	for i := 0; i < models.QuestionsPerQuiz; i++ {
		items = append(items, fmt.Sprintf(`{
			"question": "Question %d?",
			"options": ["opt a", "opt b", "opt c", "opt d"],
			"correctAnswer": %d,
			"explanation": "Because reasons.",
			"skill": "Go"
		}`, i, i%models.OptionsPerQuestion))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestGenerateReturnsValidatedQuestions(t *testing.T) {
	fake := &fakeOracle{reply: validQuizJSON()}
	gen := NewQuestionGenerator(fake)

	questions, err := gen.Generate(context.Background(), "resume text", models.DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != models.QuestionsPerQuiz {
		t.Fatalf("expected %d questions, got %d", models.QuestionsPerQuiz, len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != models.OptionsPerQuestion {
			t.Errorf("question %d: expected %d options, got %d", i, models.OptionsPerQuestion, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= models.OptionsPerQuestion {
			t.Errorf("question %d: correctAnswer %d out of range", i, q.CorrectAnswer)
		}
	}
	if len(fake.prompts) != 1 {
		t.Errorf("expected exactly one oracle call, got %d", len(fake.prompts))
	}
	if !strings.Contains(fake.prompts[0], "resume text") {
		t.Error("prompt should carry the full resume text")
	}
	if !strings.Contains(fake.prompts[0], "DIFFICULTY: medium") {
		t.Error("prompt should carry the requested difficulty")
	}
}

func TestGenerateInvalidDifficulty(t *testing.T) {
	fake := &fakeOracle{reply: validQuizJSON()}
	gen := NewQuestionGenerator(fake)

	_, err := gen.Generate(context.Background(), "resume text", "extreme")
	if !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
	if len(fake.prompts) != 0 {
		t.Errorf("invalid difficulty must fail before any oracle call, got %d calls", len(fake.prompts))
	}
}

func TestGenerateOracleFailure(t *testing.T) {
	fake := &fakeOracle{err: fmt.Errorf("%w: connection refused", ErrUnavailable)}
	gen := NewQuestionGenerator(fake)

	_, err := gen.Generate(context.Background(), "resume text", models.DifficultyEasy)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestDecodeQuestionsSchemaViolations(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(qs []models.QuizQuestion)
		wantIndex int
	}{
		{
			"correctAnswer above range",
			func(qs []models.QuizQuestion) { qs[2].CorrectAnswer = 4 },
			2,
		},
		{
			"correctAnswer below range",
			func(qs []models.QuizQuestion) { qs[0].CorrectAnswer = -1 },
			0,
		},
		{
			"missing question text",
			func(qs []models.QuizQuestion) { qs[1].Question = "" },
			1,
		},
		{
			"wrong option count",
			func(qs []models.QuizQuestion) { qs[3].Options = qs[3].Options[:3] },
			3,
		},
		{
			"missing explanation",
			func(qs []models.QuizQuestion) { qs[4].Explanation = "" },
			4,
		},
		{
			"missing skill",
			func(qs []models.QuizQuestion) { qs[4].Skill = "" },
			4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := DecodeQuestions(validQuizJSON())
			if err != nil {
				t.Fatalf("fixture should decode: %v", err)
			}
			tc.mutate(questions)
			payload, merr := marshalQuestions(questions)
			if merr != nil {
				t.Fatalf("re-marshal failed: %v", merr)
			}

			_, err = DecodeQuestions(payload)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if schemaErr.Index != tc.wantIndex {
				t.Errorf("expected offending index %d, got %d", tc.wantIndex, schemaErr.Index)
			}
		})
	}
}

func TestDecodeQuestionsWrongCount(t *testing.T) {
	payload := `[{"question": "only one?", "options": ["a","b","c","d"], "correctAnswer": 0, "explanation": "x", "skill": "Go"}]`
	_, err := DecodeQuestions(payload)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Index != -1 {
		t.Errorf("array-shape violations should report index -1, got %d", schemaErr.Index)
	}
}

func TestDecodeQuestionsUnparseable(t *testing.T) {
	_, err := DecodeQuestions("I am not JSON at all")
	if !errors.Is(err, ErrBadOutput) {
		t.Fatalf("expected ErrBadOutput, got %v", err)
	}
}

// The oracle is prose-shaped: fenced output, a raw newline inside a
// string value and a trailing comma must all survive cleanup.
func TestDecodeQuestionsMessyButRecoverable(t *testing.T) {
	items := make([]string, 0, models.QuestionsPerQuiz)
	for i := 0; i < models.QuestionsPerQuiz; i++ {
		q := fmt.Sprintf("Question %d?", i)
		if i == 0 {
			q = "What does\nthis snippet print?"
		}
		items = append(items, fmt.Sprintf(`{
			"question": %q,
			"options": ["a", "b", "c", "d"],
			"correctAnswer": 1,
			"explanation": "explained",
			"skill": "JavaScript"
		}`, q))
	}
	raw := "```json\n[" + strings.Join(items, ",") + ",]\n```"
	// Undo %q's newline escaping so the payload really contains a raw newline.
	raw = strings.Replace(raw, `\n`, "\n", 1)

	questions, err := DecodeQuestions(raw)
	if err != nil {
		t.Fatalf("expected messy output to decode, got %v", err)
	}
	if len(questions) != models.QuestionsPerQuiz {
		t.Fatalf("expected %d questions, got %d", models.QuestionsPerQuiz, len(questions))
	}
	if questions[0].Question != "What does this snippet print?" {
		t.Errorf("embedded newline should flatten to a space, got %q", questions[0].Question)
	}
}
