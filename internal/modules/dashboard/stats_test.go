package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nfrund/learnhub/internal/domain"
)

func ptr(t time.Time) *time.Time { return &t }

func TestCompute(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	students := []domain.User{
		{ID: "today", LastLoginAt: ptr(now.Add(-2 * time.Hour))},
		{ID: "yesterday", LastLoginAt: ptr(now.Add(-20 * time.Hour))},
		{ID: "week", LastLoginAt: ptr(now.Add(-6 * 24 * time.Hour))},
		{ID: "fortnight", LastLoginAt: ptr(now.Add(-14 * 24 * time.Hour))},
		{ID: "gone", LastLoginAt: ptr(now.Add(-40 * 24 * time.Hour))},
		{ID: "never"},
	}
	quizzes := []domain.Quiz{{ID: "q1", Title: "Quiz 1"}, {ID: "q2", Title: "Quiz 2"}}
	attempts := []domain.Attempt{
		{UserID: "today", QuizID: "q1", Score: 9, Total: 10},
		{UserID: "today", QuizID: "q1", Score: 10, Total: 10},
		{UserID: "today", QuizID: "q2", Score: 8, Total: 10},
		{UserID: "yesterday", QuizID: "q1", Score: 4, Total: 10},
		{UserID: "week", QuizID: "q1", Score: 55, Total: 100},
		{UserID: "teacher", QuizID: "q2", Score: 1, Total: 1},
	}

	got := Compute(now, students, quizzes, attempts)
	want := Stats{
		Students: 6,
		Grades: []Bucket{
			{Label: "<50%", Count: 1},
			{Label: "50%-60%", Count: 1},
			{Label: "60%-70%", Count: 0},
			{Label: "70%-80%", Count: 0},
			{Label: "80%-100%", Count: 1},
		},
		Activity: []Bucket{
			{Label: "Logged On Today", Count: 1},
			{Label: "Logged On in the past 3 days", Count: 1},
			{Label: "Logged On in the past Week", Count: 1},
			{Label: "Inactive for 1 month+", Count: 2},
		},
		NotStarted: 3,
		Quizzes: []QuizProgress{
			{QuizID: "q1", Title: "Quiz 1", Finished: 3},
			{QuizID: "q2", Title: "Quiz 2", Finished: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestGradeBucketEdges(t *testing.T) {
	for percent, want := range map[int]int{0: 0, 49: 0, 50: 1, 59: 1, 60: 2, 70: 3, 79: 3, 80: 4, 100: 4} {
		if got := gradeBucket(percent); got != want {
			t.Errorf("gradeBucket(%d) = %d, want %d", percent, got, want)
		}
	}
}

type failingSource struct{ Source }

func (failingSource) ListUsersByRole(context.Context, domain.Role) ([]domain.User, error) {
	return nil, errors.New("db down")
}
func (failingSource) ListQuizzes(context.Context) ([]domain.Quiz, error)     { return nil, nil }
func (failingSource) ListAttempts(context.Context) ([]domain.Attempt, error) { return nil, nil }

func TestService_StatsError(t *testing.T) {
	_, err := NewService(failingSource{}).Stats(context.Background())
	if err == nil || !strings.Contains(err.Error(), "list students: db down") {
		t.Fatalf("Stats() error = %v, want list students failure", err)
	}
}

type studentSource struct{ students []domain.User }

func (s studentSource) ListUsersByRole(context.Context, domain.Role) ([]domain.User, error) {
	return s.students, nil
}
func (studentSource) ListQuizzes(context.Context) ([]domain.Quiz, error)     { return nil, nil }
func (studentSource) ListAttempts(context.Context) ([]domain.Attempt, error) { return nil, nil }

func TestService_TodayFollowsServerDay(t *testing.T) {
	// 08:00 on the 15th in a zone ten hours ahead is 22:00 on the 14th in UTC.
	zone := time.FixedZone("AEST", 10*60*60)
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, zone)
	src := studentSource{students: []domain.User{
		// 23:00 local on the 14th, which is the same UTC day as now.
		{ID: "late", LastLoginAt: ptr(time.Date(2024, 6, 14, 23, 0, 0, 0, zone))},
		{ID: "early", LastLoginAt: ptr(time.Date(2024, 6, 15, 0, 30, 0, 0, zone))},
	}}
	svc := NewService(src)
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := []Bucket{
		{Label: ActivityLabels[0], Count: 1},
		{Label: ActivityLabels[1], Count: 1},
		{Label: ActivityLabels[2], Count: 0},
		{Label: ActivityLabels[3], Count: 0},
	}
	if diff := cmp.Diff(want, stats.Activity); diff != "" {
		t.Errorf("Activity mismatch (-want +got):\n%s", diff)
	}
}
