package quizzes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/pubsub"
	"github.com/nfrund/learnhub/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []pubsub.Message
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, msg pubsub.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// createQuiz stores a two question quiz; the second answer of each question
// is correct.
func createQuiz(t *testing.T, store domain.Store, title string) *domain.Quiz {
	t.Helper()
	q := &domain.Quiz{
		Title: title,
		Questions: []domain.Question{
			{Text: "2 + 2", Answers: []domain.Answer{{Text: "3"}, {Text: "4", Correct: true}}},
			{Text: "3 x 3", Answers: []domain.Answer{{Text: "6"}, {Text: "9", Correct: true}}},
		},
	}
	require.NoError(t, store.CreateQuiz(context.Background(), q))
	return q
}

func correctAnswers(q *domain.Quiz) map[string]string {
	answers := make(map[string]string, len(q.Questions))
	for _, question := range q.Questions {
		answers[question.ID] = question.Answers[1].ID
	}
	return answers
}

func TestService_Submit(t *testing.T) {
	store := testutils.NewStore(t)
	student := testutils.CreateUser(t, store, "ada", domain.RoleStudent)
	q := createQuiz(t, store, "Arithmetic")
	pub := &recordingPublisher{}
	svc := NewService(store, pub)

	answers := correctAnswers(q)
	answers[q.Questions[1].ID] = q.Questions[1].Answers[0].ID

	attempt, err := svc.Submit(t.Context(), student.ID, q.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 2, attempt.Total)
	assert.NotEmpty(t, attempt.ID)

	scores, err := svc.Scores(t.Context(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.QuizScore{{Title: "Arithmetic", Score: 1, Result: "1/2"}}, scores)

	require.Len(t, pub.msgs, 1)
	msg := pub.msgs[0]
	assert.Equal(t, pubsub.QuizSubmittedEvent.Name(), msg.Topic)
	assert.Equal(t, student.ID, msg.UserID)

	var ev pubsub.QuizSubmitted
	require.NoError(t, json.Unmarshal(msg.Payload, &ev))
	assert.Equal(t, attempt.ID, ev.AttemptID)
	assert.Equal(t, 1, ev.Score)
	assert.Equal(t, 2, ev.Total)
}

func TestService_SubmitKeepsAttemptWhenPublishFails(t *testing.T) {
	store := testutils.NewStore(t)
	student := testutils.CreateUser(t, store, "ada", domain.RoleStudent)
	q := createQuiz(t, store, "Arithmetic")
	svc := NewService(store, &recordingPublisher{err: errors.New("bus closed")})

	attempt, err := svc.Submit(t.Context(), student.ID, q.ID, correctAnswers(q))
	require.NoError(t, err)
	assert.Equal(t, 2, attempt.Score)

	scores, err := svc.Scores(t.Context(), student.ID)
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}

func TestService_UnknownQuiz(t *testing.T) {
	svc := NewService(testutils.NewStore(t), nil)

	_, err := svc.Quiz(t.Context(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Submit(t.Context(), "u1", "missing", map[string]string{"q": "a"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScoreList(t *testing.T) {
	tests := []struct {
		name   string
		scores []domain.QuizScore
		err    error
		want   string
	}{
		{
			name: "empty",
			want: "<p>No quiz scores available.</p>",
		},
		{
			name: "error",
			err:  errors.New("boom"),
			want: "<p>Error loading quiz scores.</p>",
		},
		{
			name: "scores",
			scores: []domain.QuizScore{
				{Title: "Fractions", Score: 4},
				{Title: "<b>Decimals</b>", Score: 0},
				{Title: "Ada's Ratios", Score: 2},
			},
			want: `<div class="quiz-score-item"><strong>Fractions</strong>: 4 points</div>` +
				`<div class="quiz-score-item"><strong>&lt;b&gt;Decimals&lt;/b&gt;</strong>: 0 points</div>` +
				`<div class="quiz-score-item"><strong>Ada&#39;s Ratios</strong>: 2 points</div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ScoreList(tt.scores, tt.err).Render(context.Background(), &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
