package models

import "fmt"

const (
	// QuestionsPerQuiz is the fixed size of a generated quiz.
	QuestionsPerQuiz = 5
	// OptionsPerQuestion is the fixed number of choices per question.
	OptionsPerQuestion = 4
)

// QuizQuestion is one multiple-choice question produced by the oracle.
// CorrectAnswer is a 0-based index into Options.
type QuizQuestion struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correct_answer" json:"correctAnswer"`
	Explanation   string   `bson:"explanation" json:"explanation"`
	Skill         string   `bson:"skill" json:"skill"`
}

// ClientQuestion is the view returned to quiz takers. It carries no
// correct-answer index so the answer key never leaves the server.
type ClientQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Skill    string   `json:"skill"`
}

// ClientView strips the answer key and explanation from a question.
func (q *QuizQuestion) ClientView() ClientQuestion {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	return ClientQuestion{
		Question: q.Question,
		Options:  opts,
		Skill:    q.Skill,
	}
}

// Validate checks a single question against the fixed quiz schema.
func (q *QuizQuestion) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("expected %d options, got %d", OptionsPerQuestion, len(q.Options))
	}
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionsPerQuestion {
		return fmt.Errorf("correctAnswer %d out of range [0,%d]", q.CorrectAnswer, OptionsPerQuestion-1)
	}
	if q.Explanation == "" {
		return fmt.Errorf("explanation is empty")
	}
	if q.Skill == "" {
		return fmt.Errorf("skill is empty")
	}
	return nil
}
