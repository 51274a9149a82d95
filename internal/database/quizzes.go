package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nfrund/learnhub/internal/domain"
)

func insertQuiz(ctx context.Context, tx *sql.Tx, q *domain.Quiz) error {
	ensureID(&q.ID)
	if _, err := tx.ExecContext(ctx, `INSERT INTO quizzes (id, topic_id, title) VALUES (?, ?, ?)`,
		q.ID, q.TopicID, q.Title); err != nil {
		return err
	}
	for qi := range q.Questions {
		question := &q.Questions[qi]
		ensureID(&question.ID)
		if question.Position == 0 {
			question.Position = qi + 1
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO questions (id, quiz_id, text, position) VALUES (?, ?, ?, ?)`,
			question.ID, q.ID, question.Text, question.Position); err != nil {
			return err
		}
		for ai := range question.Answers {
			a := &question.Answers[ai]
			ensureID(&a.ID)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO answers (id, question_id, text, correct, position) VALUES (?, ?, ?, ?, ?)`,
				a.ID, question.ID, a.Text, boolToInt(a.Correct), ai+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateQuiz stores a quiz that is not attached to a course topic.
func (s *Store) CreateQuiz(ctx context.Context, q *domain.Quiz) error {
	return s.write(ctx, "create quiz", func(ctx context.Context, tx *sql.Tx) error {
		return insertQuiz(ctx, tx, q)
	})
}

func (s *Store) FindQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	var q domain.Quiz
	err := s.db.QueryRowContext(ctx, `SELECT id, topic_id, title FROM quizzes WHERE id = ?`, id).
		Scan(&q.ID, &q.TopicID, &q.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query quiz: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT qu.id, qu.text, qu.position, a.id, a.text, a.correct
		 FROM questions qu JOIN answers a ON a.question_id = qu.id
		 WHERE qu.quiz_id = ?
		 ORDER BY qu.position, a.position`, id)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			question domain.Question
			answer   domain.Answer
			correct  int
		)
		if err := rows.Scan(&question.ID, &question.Text, &question.Position, &answer.ID, &answer.Text, &correct); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		answer.Correct = correct != 0
		if n := len(q.Questions); n == 0 || q.Questions[n-1].ID != question.ID {
			q.Questions = append(q.Questions, question)
		}
		last := &q.Questions[len(q.Questions)-1]
		last.Answers = append(last.Answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Store) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT id, topic_id, title FROM quizzes ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []domain.Quiz{}
	for rows.Next() {
		var q domain.Quiz
		if err := rows.Scan(&q.ID, &q.TopicID, &q.Title); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// SaveAttempt stores a graded attempt with its responses.
func (s *Store) SaveAttempt(ctx context.Context, a *domain.Attempt) error {
	ensureID(&a.ID)
	return s.write(ctx, "save attempt", func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attempts (id, quiz_id, user_id, score, total, submitted_at) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, a.QuizID, a.UserID, a.Score, a.Total, a.SubmittedAt.Unix()); err != nil {
			return err
		}
		for _, r := range a.Responses {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO responses (attempt_id, question_id, answer_id, correct) VALUES (?, ?, ?, ?)`,
				a.ID, r.QuestionID, r.AnswerID, boolToInt(r.Correct)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) ScoresForUser(ctx context.Context, userID string) ([]domain.QuizScore, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT q.title, a.score, a.total
		 FROM attempts a JOIN quizzes q ON q.id = a.quiz_id
		 WHERE a.user_id = ?
		 ORDER BY a.submitted_at, a.rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	scores := []domain.QuizScore{}
	for rows.Next() {
		var (
			title        string
			score, total int
		)
		if err := rows.Scan(&title, &score, &total); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, domain.QuizScore{
			Title:  title,
			Score:  score,
			Result: domain.Attempt{Score: score, Total: total}.Result(),
		})
	}
	return scores, rows.Err()
}

// ListAttempts returns every attempt without responses, oldest first.
func (s *Store) ListAttempts(ctx context.Context) ([]domain.Attempt, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, user_id, score, total, submitted_at FROM attempts ORDER BY submitted_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.Attempt
	for rows.Next() {
		var (
			a         domain.Attempt
			submitted int64
		)
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Score, &a.Total, &submitted); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.SubmittedAt = time.Unix(submitted, 0).UTC()
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
