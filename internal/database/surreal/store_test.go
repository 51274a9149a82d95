package surreal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/learnhub/internal/database"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	query  string
	params map[string]any
}

// fakeExecutor answers queries from a responder keyed on the statement text.
type fakeExecutor struct {
	calls   []call
	respond func(query string, params map[string]any) ([]any, error)
}

func (f *fakeExecutor) rows(query string, params map[string]any) ([]any, error) {
	f.calls = append(f.calls, call{query: query, params: params})
	if f.respond == nil {
		return nil, nil
	}
	return f.respond(query, params)
}

func (f *fakeExecutor) Query(_ context.Context, query string, params map[string]any, result any) error {
	rows, err := f.rows(query, params)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []any{}
	}
	return remarshal(rows, result)
}

func (f *fakeExecutor) QueryOne(_ context.Context, query string, params map[string]any, result any) (bool, error) {
	rows, err := f.rows(query, params)
	if err != nil || len(rows) == 0 {
		return false, err
	}
	return true, remarshal(rows[0], result)
}

func (f *fakeExecutor) Execute(_ context.Context, query string, params map[string]any) error {
	_, err := f.rows(query, params)
	return err
}

func (f *fakeExecutor) last(prefix string) *call {
	for i := len(f.calls) - 1; i >= 0; i-- {
		if strings.HasPrefix(f.calls[i].query, prefix) {
			return &f.calls[i]
		}
	}
	return nil
}

func newTestStore(t *testing.T, fake *fakeExecutor) *Store {
	t.Helper()
	s, err := New(context.Background(), fake, database.DefaultTimeouts, nil)
	require.NoError(t, err)
	return s
}

func TestNew_DefinesIndexes(t *testing.T) {
	fake := &fakeExecutor{}
	s := newTestStore(t, fake)

	require.Len(t, fake.calls, 1)
	assert.Contains(t, fake.calls[0].query, "DEFINE INDEX IF NOT EXISTS user_email")
	assert.NoError(t, s.Close())
}

func TestStore_CreateUser(t *testing.T) {
	fake := &fakeExecutor{}
	s := newTestStore(t, fake)

	u := &domain.User{
		Name: "Ada", Username: "ada", Email: "Ada@Example.com", Role: domain.RoleStudent,
		Grade: domain.GradeTenth, RegisteredAt: time.Unix(1700000000, 0),
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	assert.NotEmpty(t, u.ID)

	c := fake.last("CREATE type::thing('user'")
	require.NotNil(t, c)
	assert.Equal(t, u.ID, c.params["id"])
	content := c.params["content"].(map[string]any)
	assert.Equal(t, "ada@example.com", content["email"])
	assert.Equal(t, int64(1700000000), content["registration_date"])

	fake.respond = func(string, map[string]any) ([]any, error) {
		return nil, errors.New("Database index `user_email` already contains 'ada@example.com'")
	}
	err := s.CreateUser(context.Background(), &domain.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestStore_FindUser(t *testing.T) {
	last := int64(1700000500)
	fake := &fakeExecutor{respond: func(query string, params map[string]any) ([]any, error) {
		if params["email"] == "ada@example.com" {
			return []any{map[string]any{
				"id": "u1", "name": "Ada", "username": "ada", "email": "ada@example.com",
				"password_hash": "$2a$10$hash", "role": "student", "grade": "TENTH", "age": 15,
				"failed_signin_attempts": 2, "registration_date": 1700000000, "last_login": last,
			}}, nil
		}
		return nil, nil
	}}
	s := newTestStore(t, fake)

	u, err := s.FindUserByEmail(context.Background(), "ADA@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, domain.GradeTenth, u.Grade)
	assert.Equal(t, 2, u.FailedSignIns)
	assert.Equal(t, []byte("$2a$10$hash"), u.PasswordHash)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, last, u.LastLoginAt.Unix())

	missing, err := s.FindUserByUsername(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_SignInCounters(t *testing.T) {
	fake := &fakeExecutor{respond: func(query string, params map[string]any) ([]any, error) {
		if strings.HasPrefix(query, "UPDATE type::thing('user', $id) SET failed_signin_attempts += 1") && params["id"] == "u1" {
			return []any{map[string]any{"failed_signin_attempts": 6}}, nil
		}
		return nil, nil
	}}
	s := newTestStore(t, fake)
	ctx := context.Background()

	n, err := s.RecordFailedSignIn(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = s.RecordFailedSignIn(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, s.UnlockUser(ctx, "ghost@example.com"), domain.ErrNotFound)

	at := time.Unix(1700000000, 0)
	require.NoError(t, s.RecordSignIn(ctx, "u1", at))
	c := fake.last("UPDATE type::thing('user', $id) SET failed_signin_attempts = 0")
	require.NotNil(t, c)
	assert.Equal(t, int64(1700000000), c.params["at"])
}

func TestStore_Leaderboard(t *testing.T) {
	fake := &fakeExecutor{respond: func(query string, _ map[string]any) ([]any, error) {
		switch {
		case strings.Contains(query, "FROM user"):
			return []any{
				map[string]any{"id": "a", "username": "cat"},
				map[string]any{"id": "b", "username": "bob"},
				map[string]any{"id": "c", "username": "ann"},
			}, nil
		case strings.Contains(query, "FROM progress"):
			return []any{
				map[string]any{"user_id": "a", "points": 10},
				map[string]any{"user_id": "b", "points": 30},
			}, nil
		}
		return nil, nil
	}}
	s := newTestStore(t, fake)

	board, err := s.Leaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{
		{Username: "bob", Points: 30},
		{Username: "cat", Points: 10},
		{Username: "ann", Points: 0},
	}, board)

	top, err := s.Leaderboard(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestStore_CreateCourseKeepsAnswersOutOfTree(t *testing.T) {
	fake := &fakeExecutor{}
	s := newTestStore(t, fake)

	c := &domain.Course{
		Name: "Pre-Algebra",
		Modules: []domain.Module{{
			Name: "Whole Numbers",
			Topics: []domain.Topic{{
				Name:   "Place Value",
				Lesson: &domain.Lesson{Title: "Place Value", LearningObjective: "<p>x</p>"},
				Quiz: &domain.Quiz{Title: "Quiz", Questions: []domain.Question{{
					Text:    "2+2?",
					Answers: []domain.Answer{{Text: "4", Correct: true}, {Text: "5"}},
				}}},
			}},
		}},
	}
	require.NoError(t, s.CreateCourse(context.Background(), c))

	course := fake.last("CREATE type::thing('course'")
	require.NotNil(t, course)
	modules := course.params["content"].(map[string]any)["modules"].([]domain.Module)
	header := modules[0].Topics[0].Quiz
	require.NotNil(t, header)
	assert.Empty(t, header.Questions)
	assert.NotEmpty(t, c.Modules[0].Topics[0].Quiz.Questions, "caller's course is left intact")

	quiz := fake.last("CREATE type::thing('quiz'")
	require.NotNil(t, quiz)
	questions := quiz.params["content"].(map[string]any)["questions"].([]questionRow)
	require.Len(t, questions, 1)
	assert.True(t, questions[0].Answers[0].Correct)

	lesson := fake.last("CREATE type::thing('lesson'")
	require.NotNil(t, lesson)
	assert.NotContains(t, lesson.params["content"], "id")
	assert.Equal(t, c.ID, lesson.params["content"].(map[string]any)["course_id"])
}

func TestStore_ScoresForUser(t *testing.T) {
	fake := &fakeExecutor{respond: func(query string, _ map[string]any) ([]any, error) {
		switch {
		case strings.Contains(query, "FROM attempt"):
			return []any{
				map[string]any{"id": "a1", "quiz_id": "q1", "user_id": "u1", "score": 3, "total": 4, "submitted_at": 1},
			}, nil
		case strings.Contains(query, "FROM quiz"):
			return []any{map[string]any{"id": "q1", "title": "Fractions"}}, nil
		}
		return nil, nil
	}}
	s := newTestStore(t, fake)

	scores, err := s.ScoresForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []domain.QuizScore{{Title: "Fractions", Score: 3, Result: "3/4"}}, scores)
}

func TestStore_WrapsExecutorErrors(t *testing.T) {
	fake := &fakeExecutor{}
	s := newTestStore(t, fake)
	fake.respond = func(string, map[string]any) ([]any, error) {
		return nil, database.NewDBError(database.ErrQueryFailed, "query execution failed")
	}

	_, err := s.ListCourses(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrQueryFailed)
	assert.Contains(t, err.Error(), "list courses")
}
