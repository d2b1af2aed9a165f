package models

import "time"

// DetailedResultEntry is the per-question grading record. It copies the
// question text and full options list so a report can be rendered later
// without the session still existing.
type DetailedResultEntry struct {
	QuestionIndex int      `bson:"question_index" json:"questionIndex"`
	Question      string   `bson:"question" json:"question"`
	IsCorrect     bool     `bson:"is_correct" json:"isCorrect"`
	UserAnswer    int      `bson:"user_answer" json:"userAnswer"`
	CorrectAnswer int      `bson:"correct_answer" json:"correctAnswer"`
	Explanation   string   `bson:"explanation" json:"explanation"`
	Skill         string   `bson:"skill" json:"skill"`
	Options       []string `bson:"options" json:"options"`
}

// QuizResult is one graded submission. It references the session by ID but
// outlives it: results are permanent, sessions expire.
type QuizResult struct {
	ID              string                `bson:"_id,omitempty" json:"id"`
	SessionID       string                `bson:"session_id" json:"sessionId"`
	UserID          string                `bson:"user_id" json:"userId"`
	UserAnswers     []int                 `bson:"user_answers" json:"userAnswers"`
	Score           int                   `bson:"score" json:"score"`
	TotalQuestions  int                   `bson:"total_questions" json:"totalQuestions"`
	DetailedResults []DetailedResultEntry `bson:"detailed_results" json:"detailedResults"`
	CompletedAt     time.Time             `bson:"completed_at" json:"completedAt"`
}
