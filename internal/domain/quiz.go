package domain

import (
	"context"
	"fmt"
	"time"
)

// Quiz is the assessment attached to a topic.
type Quiz struct {
	ID        string     `json:"id"`
	TopicID   string     `json:"topic_id"`
	Title     string     `json:"title" validate:"required,max=100"`
	Questions []Question `json:"questions,omitempty"`
}

// Question is a single multiple choice question.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Position int      `json:"position"`
	Answers  []Answer `json:"answers"`
}

// Answer is a selectable answer. Which answer is correct never leaves the server.
type Answer struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"-"`
}

// Attempt is a graded submission of a quiz.
type Attempt struct {
	ID          string     `json:"id"`
	QuizID      string     `json:"quiz_id"`
	UserID      string     `json:"user_id"`
	Score       int        `json:"score"`
	Total       int        `json:"total"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Responses   []Response `json:"responses,omitempty"`
}

// Response records the answer chosen for one question.
type Response struct {
	QuestionID string `json:"question_id"`
	AnswerID   string `json:"answer_id"`
	Correct    bool   `json:"correct"`
}

// Result formats the score the way the quiz scores list shows it, e.g. "4/5".
func (a Attempt) Result() string {
	return fmt.Sprintf("%d/%d", a.Score, a.Total)
}

// Percent is the score as a whole percentage of the total.
func (a Attempt) Percent() int {
	if a.Total == 0 {
		return 0
	}
	return a.Score * 100 / a.Total
}

// Grade scores answers, keyed by question ID, against the quiz. Unanswered
// questions count as wrong. The returned attempt has no ID, user or time.
func (q *Quiz) Grade(answers map[string]string) Attempt {
	attempt := Attempt{QuizID: q.ID, Total: len(q.Questions)}
	for _, question := range q.Questions {
		chosen := answers[question.ID]
		correct := false
		for _, a := range question.Answers {
			if a.ID == chosen && a.Correct {
				correct = true
				break
			}
		}
		if correct {
			attempt.Score++
		}
		attempt.Responses = append(attempt.Responses, Response{
			QuestionID: question.ID,
			AnswerID:   chosen,
			Correct:    correct,
		})
	}
	return attempt
}

// QuizScore is one row of a student's quiz scores list. Score is the number
// of points earned; Result is the "score/total" form.
type QuizScore struct {
	Title  string `json:"title"`
	Score  int    `json:"score"`
	Result string `json:"result"`
}

// QuizRepository persists quizzes and graded attempts.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, q *Quiz) error
	// FindQuiz loads the quiz with its questions and answers, or (nil, nil).
	FindQuiz(ctx context.Context, id string) (*Quiz, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	SaveAttempt(ctx context.Context, a *Attempt) error
	// ScoresForUser lists the user's attempts, oldest first.
	ScoresForUser(ctx context.Context, userID string) ([]QuizScore, error)
	ListAttempts(ctx context.Context) ([]Attempt, error)
}

// Store bundles every repository a backend provides.
type Store interface {
	UserRepository
	ProgressRepository
	LessonRepository
	QuizRepository
	Close() error
}
