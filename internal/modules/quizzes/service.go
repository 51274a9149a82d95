// Package quizzes grades quiz submissions and lists each student's scores.
package quizzes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/pubsub"
	"github.com/nfrund/learnhub/internal/registry"
)

// ServiceKey shares the Service with other modules.
const ServiceKey registry.Key[*Service] = "quizzes.service"

// Service grades attempts and reads scores.
type Service struct {
	quizzes   domain.QuizRepository
	publisher pubsub.Publisher
	now       func() time.Time
}

// NewService creates a Service. publisher may be nil, in which case no
// quiz.submitted events are sent.
func NewService(quizzes domain.QuizRepository, publisher pubsub.Publisher) *Service {
	return &Service{quizzes: quizzes, publisher: publisher, now: time.Now}
}

// Scores lists the user's graded attempts, oldest first.
func (s *Service) Scores(ctx context.Context, userID string) ([]domain.QuizScore, error) {
	return s.quizzes.ScoresForUser(ctx, userID)
}

// Catalogue lists every quiz without its questions.
func (s *Service) Catalogue(ctx context.Context) ([]domain.Quiz, error) {
	return s.quizzes.ListQuizzes(ctx)
}

// Quiz loads a quiz with its questions. It returns domain.ErrNotFound for
// an unknown id.
func (s *Service) Quiz(ctx context.Context, id string) (*domain.Quiz, error) {
	q, err := s.quizzes.FindQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

// Submit grades answers (question id to answer id), stores the attempt and
// announces it on the bus. A failed publish is logged; the attempt stands.
func (s *Service) Submit(ctx context.Context, userID, quizID string, answers map[string]string) (*domain.Attempt, error) {
	q, err := s.Quiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempt := q.Grade(answers)
	attempt.ID = uuid.NewString()
	attempt.UserID = userID
	attempt.SubmittedAt = s.now().UTC()
	if err := s.quizzes.SaveAttempt(ctx, &attempt); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	if s.publisher != nil {
		err := pubsub.Publish(ctx, s.publisher, pubsub.QuizSubmittedEvent, userID, pubsub.QuizSubmitted{
			UserID:      userID,
			QuizID:      quizID,
			AttemptID:   attempt.ID,
			Score:       attempt.Score,
			Total:       attempt.Total,
			SubmittedAt: attempt.SubmittedAt,
		})
		if err != nil {
			slog.Error("Failed to publish quiz submission", "attempt_id", attempt.ID, "error", err)
		}
	}
	return &attempt, nil
}
