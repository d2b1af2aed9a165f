package models

import "time"

// SessionTTL is how long a generated quiz stays answerable.
const SessionTTL = 30 * time.Minute

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d is one of the accepted difficulty levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuizSession is one generated quiz tied to a single resume submission.
// Sessions are write-once: created on quiz start, read on submission,
// evicted by the TTL index on expires_at.
type QuizSession struct {
	ID         string         `bson:"_id,omitempty" json:"id"`
	UserID     string         `bson:"user_id" json:"user_id"`
	ResumeText string         `bson:"resume_text" json:"resume_text"`
	Difficulty string         `bson:"difficulty" json:"difficulty"`
	Questions  []QuizQuestion `bson:"questions" json:"questions"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
	ExpiresAt  time.Time      `bson:"expires_at" json:"expires_at"`
}

// Expired reports whether the session is past its TTL at the given instant.
// Mongo's TTL monitor purges lazily, so reads must check this themselves.
func (s *QuizSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
