package leaderboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/pubsub"
)

// Awarder turns graded quiz attempts into points and streak days. Every
// correct answer is worth one point.
type Awarder struct {
	subscriber pubsub.Subscriber
	progress   domain.ProgressRepository
	mu         sync.Mutex
}

// NewAwarder creates an Awarder reading from subscriber.
func NewAwarder(subscriber pubsub.Subscriber, progress domain.ProgressRepository) *Awarder {
	return &Awarder{subscriber: subscriber, progress: progress}
}

// Start subscribes to quiz submissions. Delivery stops when ctx ends.
func (a *Awarder) Start(ctx context.Context) error {
	return pubsub.Subscribe(ctx, a.subscriber, pubsub.QuizSubmittedEvent, a.Handle)
}

// Handle applies one submission. Failures are logged and the event is
// dropped; the in-memory bus would otherwise redeliver it forever.
func (a *Awarder) Handle(ctx context.Context, ev pubsub.QuizSubmitted) error {
	logger := slog.With("user_id", ev.UserID, "quiz_id", ev.QuizID, "attempt_id", ev.AttemptID)

	// Read-modify-write of one progress record.
	a.mu.Lock()
	defer a.mu.Unlock()

	p, err := a.progress.FindProgress(ctx, ev.UserID)
	if err != nil {
		logger.Error("Failed to load progress", "error", err)
		return nil
	}
	if p == nil {
		p = &domain.Progress{UserID: ev.UserID}
	}
	p.Award(ev.Score, ev.SubmittedAt)
	if err := a.progress.SaveProgress(ctx, p); err != nil {
		logger.Error("Failed to save progress", "error", err)
		return nil
	}
	logger.Info("Points awarded", "points", ev.Score, "total", p.Points, "streak", p.CurrentStreak)
	return nil
}
