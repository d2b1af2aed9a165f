package service

import (
	"fmt"
	"time"

	"resumentor/internal/models"
	"resumentor/internal/repository"
)

// AnswerCountError is returned when a submission does not carry exactly
// one answer per question. Nothing is scored or persisted in that case.
type AnswerCountError struct {
	Expected int
	Got      int
}

func (e *AnswerCountError) Error() string {
	return fmt.Sprintf("expected %d answers, but got %d", e.Expected, e.Got)
}

// FallbackPolicy resolves the answer index for a submission that is empty
// or does not match any option text.
type FallbackPolicy func(questionIndex int, selectedText string) int

// FirstOptionFallback is the historical policy: an unanswered or
// unrecognized submission counts as option 0. This conflates "gave no
// answer" with "picked option A"; it lives behind this named function so
// a deployment can swap it without touching the reconciler.
func FirstOptionFallback(questionIndex int, selectedText string) int {
	return 0
}

// Scorer reconciles submitted answer text against a stored session and
// grades it. Scoring is pure; persisting the result is the caller's job.
type Scorer struct {
	Fallback FallbackPolicy
}

func NewScorer() *Scorer {
	return &Scorer{Fallback: FirstOptionFallback}
}

// Score maps each submitted answer back to an option index, grades it
// against the stored answer key, and builds the detailed result.
// Submissions carry option text, not indices, so reconciliation is an
// exact case-sensitive match against that question's own option list.
func (s *Scorer) Score(session *models.QuizSession, submitted []string) (*models.QuizResult, error) {
	if session == nil {
		return nil, repository.ErrSessionNotFound
	}
	if len(submitted) != len(session.Questions) {
		return nil, &AnswerCountError{Expected: len(session.Questions), Got: len(submitted)}
	}

	userAnswers := make([]int, 0, len(session.Questions))
	detailed := make([]models.DetailedResultEntry, 0, len(session.Questions))
	score := 0

	for i, question := range session.Questions {
		selected := submitted[i]

		userAnswerIndex := -1
		if selected != "" {
			for j, opt := range question.Options {
				if opt == selected {
					userAnswerIndex = j
					break
				}
			}
		}
		if userAnswerIndex == -1 {
			userAnswerIndex = s.Fallback(i, selected)
		}

		isCorrect := userAnswerIndex == question.CorrectAnswer
		if isCorrect {
			score++
		}

		userAnswers = append(userAnswers, userAnswerIndex)
		options := make([]string, len(question.Options))
		copy(options, question.Options)
		detailed = append(detailed, models.DetailedResultEntry{
			QuestionIndex: i,
			Question:      question.Question,
			IsCorrect:     isCorrect,
			UserAnswer:    userAnswerIndex,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
			Skill:         question.Skill,
			Options:       options,
		})
	}

	return &models.QuizResult{
		SessionID:       session.ID,
		UserID:          session.UserID,
		UserAnswers:     userAnswers,
		Score:           score,
		TotalQuestions:  len(session.Questions),
		DetailedResults: detailed,
		CompletedAt:     time.Now().UTC(),
	}, nil
}

// Percentage is the caller-facing score percentage. It is computed for
// responses, never stored.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(score)/float64(total)*100 + 0.5)
}
