package service

import (
	"context"
	"fmt"

	"resumentor/internal/models"
	"resumentor/internal/oracle"
	"resumentor/internal/repository"
)

// NotAResumeError means the validator's verdict was negative. Message is
// the oracle's explanation, safe to show to the user.
type NotAResumeError struct {
	Message string
}

func (e *NotAResumeError) Error() string {
	if e.Message == "" {
		return "the provided text is not a valid resume"
	}
	return e.Message
}

// QuizService runs the quiz lifecycle: validate the resume, generate
// questions, persist the session, and on submission reconcile and grade.
type QuizService struct {
	Validator   *oracle.ResumeValidator
	Generator   *oracle.QuestionGenerator
	SessionRepo *repository.SessionRepository
	ResultRepo  *repository.ResultRepository
	Scorer      *Scorer
}

func NewQuizService(
	validator *oracle.ResumeValidator,
	generator *oracle.QuestionGenerator,
	sessionRepo *repository.SessionRepository,
	resultRepo *repository.ResultRepository,
) *QuizService {
	return &QuizService{
		Validator:   validator,
		Generator:   generator,
		SessionRepo: sessionRepo,
		ResultRepo:  resultRepo,
		Scorer:      NewScorer(),
	}
}

// StartQuiz validates the resume, generates a question set and persists
// it as a new session. Validation failure and generation failure are both
// terminal for the request; nothing is stored on error.
func (s *QuizService) StartQuiz(ctx context.Context, resumeText, difficulty, userID string) (*models.QuizSession, error) {
	if !models.ValidDifficulty(difficulty) {
		return nil, oracle.ErrInvalidDifficulty
	}

	validation, err := s.Validator.Validate(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	if !validation.IsResume {
		return nil, &NotAResumeError{Message: validation.Message}
	}

	questions, err := s.Generator.Generate(ctx, resumeText, difficulty)
	if err != nil {
		return nil, err
	}

	session := &models.QuizSession{
		UserID:     userID,
		ResumeText: resumeText,
		Difficulty: difficulty,
		Questions:  questions,
	}
	if err := s.SessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("saving quiz session: %w", err)
	}
	return session, nil
}

// SubmitQuiz loads the session (expired reads behave as not found),
// scores the submission and appends the result.
func (s *QuizService) SubmitQuiz(ctx context.Context, sessionID, userID string, submitted []string) (*models.QuizResult, error) {
	session, err := s.SessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := s.Scorer.Score(session, submitted)
	if err != nil {
		return nil, err
	}
	if userID != "" {
		result.UserID = userID
	}

	if err := s.ResultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("saving quiz result: %w", err)
	}
	return result, nil
}

// ResultsByUser returns every graded quiz a user has completed. Results
// outlive their sessions, so this works after expiry.
func (s *QuizService) ResultsByUser(ctx context.Context, userID string) ([]models.QuizResult, error) {
	return s.ResultRepo.FindByUser(ctx, userID)
}

// ResultsBySession returns the results recorded for one session, oldest
// first. Resubmissions mean there can be more than one.
func (s *QuizService) ResultsBySession(ctx context.Context, sessionID string) ([]models.QuizResult, error) {
	return s.ResultRepo.FindBySession(ctx, sessionID)
}
