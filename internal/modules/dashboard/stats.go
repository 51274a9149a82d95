// Package dashboard aggregates class statistics for teachers.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/nfrund/learnhub/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Bucket labels, in display order.
var (
	GradeLabels    = []string{"<50%", "50%-60%", "60%-70%", "70%-80%", "80%-100%"}
	ActivityLabels = []string{
		"Logged On Today",
		"Logged On in the past 3 days",
		"Logged On in the past Week",
		"Inactive for 1 month+",
	}
)

// NotStartedLabel counts students without any quiz attempt.
const NotStartedLabel = "Have not started"

// Bucket is one slice of a chart: how many students fall under Label.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// QuizProgress counts the students that finished a quiz.
type QuizProgress struct {
	QuizID   string `json:"quiz_id"`
	Title    string `json:"title"`
	Finished int    `json:"finished"`
}

// Stats is everything the teacher dashboard shows.
type Stats struct {
	Students   int            `json:"students"`
	Grades     []Bucket       `json:"grades"`
	Activity   []Bucket       `json:"activity"`
	NotStarted int            `json:"not_started"`
	Quizzes    []QuizProgress `json:"quizzes"`
}

// Compute aggregates the stats at now. A student's grade is the mean
// percentage of their attempts; students without attempts have no grade.
// Students last seen 8 to 30 days ago fall in no activity bucket.
func Compute(now time.Time, students []domain.User, quizzes []domain.Quiz, attempts []domain.Attempt) Stats {
	isStudent := make(map[string]bool, len(students))
	for _, s := range students {
		isStudent[s.ID] = true
	}

	type tally struct{ sum, n int }
	perStudent := make(map[string]*tally)
	finished := make(map[string]map[string]bool)
	for _, a := range attempts {
		if !isStudent[a.UserID] {
			continue
		}
		t := perStudent[a.UserID]
		if t == nil {
			t = &tally{}
			perStudent[a.UserID] = t
		}
		t.sum += a.Percent()
		t.n++
		if finished[a.QuizID] == nil {
			finished[a.QuizID] = make(map[string]bool)
		}
		finished[a.QuizID][a.UserID] = true
	}

	stats := Stats{
		Students:   len(students),
		Grades:     buckets(GradeLabels),
		Activity:   buckets(ActivityLabels),
		NotStarted: len(students) - len(perStudent),
		Quizzes:    make([]QuizProgress, 0, len(quizzes)),
	}
	for _, t := range perStudent {
		stats.Grades[gradeBucket(t.sum/t.n)].Count++
	}
	for _, s := range students {
		if i, ok := activityBucket(now, s.LastLoginAt); ok {
			stats.Activity[i].Count++
		}
	}
	for _, q := range quizzes {
		stats.Quizzes = append(stats.Quizzes, QuizProgress{QuizID: q.ID, Title: q.Title, Finished: len(finished[q.ID])})
	}
	return stats
}

func buckets(labels []string) []Bucket {
	out := make([]Bucket, len(labels))
	for i, l := range labels {
		out[i] = Bucket{Label: l}
	}
	return out
}

func gradeBucket(percent int) int {
	switch {
	case percent < 50:
		return 0
	case percent < 60:
		return 1
	case percent < 70:
		return 2
	case percent < 80:
		return 3
	default:
		return 4
	}
}

func activityBucket(now time.Time, last *time.Time) (int, bool) {
	if last == nil {
		return 3, true
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	age := now.Sub(*last)
	switch {
	case !last.Before(today):
		return 0, true
	case age <= 3*24*time.Hour:
		return 1, true
	case age <= 7*24*time.Hour:
		return 2, true
	case age > 30*24*time.Hour:
		return 3, true
	}
	return 0, false
}

// Source is the data the dashboard reads.
type Source interface {
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	ListAttempts(ctx context.Context) ([]domain.Attempt, error)
}

// Service computes Stats from a Source.
type Service struct {
	source Source
	now    func() time.Time
}

// NewService creates a Service.
func NewService(source Source) *Service {
	return &Service{source: source, now: time.Now}
}

// Stats loads students, quizzes and attempts concurrently and aggregates them.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var (
		students []domain.User
		quizzes  []domain.Quiz
		attempts []domain.Attempt
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		if students, err = s.source.ListUsersByRole(ctx, domain.RoleStudent); err != nil {
			err = fmt.Errorf("list students: %w", err)
		}
		return err
	})
	eg.Go(func() (err error) {
		if quizzes, err = s.source.ListQuizzes(ctx); err != nil {
			err = fmt.Errorf("list quizzes: %w", err)
		}
		return err
	})
	eg.Go(func() (err error) {
		if attempts, err = s.source.ListAttempts(ctx); err != nil {
			err = fmt.Errorf("list attempts: %w", err)
		}
		return err
	})
	if err := eg.Wait(); err != nil {
		return Stats{}, err
	}
	// "Today" is the server's calendar day, so now stays in local time.
	return Compute(s.now(), students, quizzes, attempts), nil
}
