package pubsub

import "time"

// QuizSubmitted is published after a quiz attempt has been graded and stored.
type QuizSubmitted struct {
	UserID      string    `json:"user_id"`
	QuizID      string    `json:"quiz_id"`
	AttemptID   string    `json:"attempt_id"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// QuizSubmittedEvent is the topic the leaderboard listens on.
var QuizSubmittedEvent = NewEvent[QuizSubmitted]("quiz.submitted")
